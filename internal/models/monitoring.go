package models

import (
	"time"
)

// MonitoringStatus represents the lifecycle state of a monitoring request
type MonitoringStatus string

const (
	MonitoringPending  MonitoringStatus = "PENDING"
	MonitoringApproved MonitoringStatus = "APPROVED"
	MonitoringRejected MonitoringStatus = "REJECTED"
)

// MonitoringRequest is a solicitation from a doctor or caregiver to monitor
// a patient's health records. Requests are kept after resolution as an
// audit trail; only cancel-while-pending and revocation remove them.
type MonitoringRequest struct {
	BaseModel
	PatientID   string           `gorm:"size:36;index" json:"patientId"`
	RequesterID string           `gorm:"size:36;index" json:"requesterId"`
	Status      MonitoringStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty"`

	// Relations
	Patient   User `gorm:"foreignKey:PatientID" json:"-"`
	Requester User `gorm:"foreignKey:RequesterID" json:"-"`
}

// MonitoringRelation is an active, approved grant letting a monitor read a
// patient's records. The composite unique index backs the at-most-one
// relation per (patient, monitor) invariant; a raced duplicate insert
// fails with a duplicate-key error rather than slipping through.
type MonitoringRelation struct {
	BaseModel
	PatientID string    `gorm:"size:36;uniqueIndex:idx_patient_monitor" json:"patientId"`
	MonitorID string    `gorm:"size:36;uniqueIndex:idx_patient_monitor" json:"monitorId"`
	RequestID string    `gorm:"size:36;index" json:"requestId"`
	GrantedAt time.Time `json:"grantedAt"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Monitor User `gorm:"foreignKey:MonitorID" json:"-"`
}

// MonitoringRequestView is a request enriched with both parties' display
// names for API responses.
type MonitoringRequestView struct {
	ID            string           `json:"id"`
	PatientID     string           `json:"patientId"`
	PatientName   string           `json:"patientName,omitempty"`
	RequesterID   string           `json:"requesterId"`
	RequesterName string           `json:"requesterName,omitempty"`
	RequesterRole Role             `json:"requesterRole,omitempty"`
	Status        MonitoringStatus `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	RespondedAt   *time.Time       `json:"respondedAt,omitempty"`
}

// MonitoringRelationView is a relation enriched with the counterpart's
// display name for API responses.
type MonitoringRelationView struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName,omitempty"`
	MonitorID   string    `json:"monitorId"`
	MonitorName string    `json:"monitorName,omitempty"`
	MonitorRole Role      `json:"monitorRole,omitempty"`
	GrantedAt   time.Time `json:"grantedAt"`
}
