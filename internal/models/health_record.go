package models

import (
	"strokewatch-server/internal/risk"
)

// HealthRecord is a single timestamped vitals snapshot for a patient.
// Measurement fields are nullable: an absent reading is "not measured",
// which the scorer treats as a zero contribution. Records are immutable
// after creation except for deletion; retrieval is newest-first.
type HealthRecord struct {
	BaseModel
	PatientID    string   `gorm:"size:36;index" json:"patientId"`
	WeightKg     *float64 `json:"weightKg,omitempty"`
	SystolicBP   *int     `json:"systolicBp,omitempty"`
	DiastolicBP  *int     `json:"diastolicBp,omitempty"`
	GlucoseLevel *int     `json:"glucoseLevel,omitempty"`
	Smoking      *int     `json:"smoking,omitempty"` // cigarettes per day

	// Derived at insert time; never recomputed when the profile changes.
	RiskScore float64    `json:"riskScore"`
	RiskLevel risk.Level `gorm:"size:20" json:"riskLevel"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
