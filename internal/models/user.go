package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDoctor    Role = "DOCTOR"
	RoleCaregiver Role = "CAREGIVER"
	RolePatient   Role = "PATIENT"
)

// Sex is a patient's biological sex as used by the risk model.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// SmokingHistory classifies a patient's smoking background.
type SmokingHistory string

const (
	SmokingSmoker     SmokingHistory = "SMOKER"
	SmokingPastSmoker SmokingHistory = "PAST_SMOKER"
	SmokingNonSmoker  SmokingHistory = "NON_SMOKER"
)

// User represents an account in the system. Patients additionally carry the
// static health profile consumed by the risk scorer; those columns stay
// NULL for doctors and caregivers.
type User struct {
	BaseModel
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Name     string `gorm:"size:100" json:"name"`
	Role     Role   `gorm:"size:20;default:'PATIENT'" json:"role"`

	// Patient static health profile (slow-changing, updated via the
	// health-info endpoints only).
	Sex               *Sex            `gorm:"size:1" json:"sex,omitempty"`
	BirthDate         *time.Time      `json:"birthDate,omitempty"`
	HeightCm          *int            `json:"heightCm,omitempty"`
	StrokeHistory     bool            `gorm:"default:false" json:"strokeHistory"`
	Hypertension      bool            `gorm:"default:false" json:"hypertension"`
	HeartDisease      bool            `gorm:"default:false" json:"heartDisease"`
	Diabetes          bool            `gorm:"default:false" json:"diabetes"`
	SmokingHistory    *SmokingHistory `gorm:"size:20" json:"smokingHistory,omitempty"`
	ProfileMeasuredAt *time.Time      `json:"profileMeasuredAt,omitempty"`

	// Relations (not always preloaded)
	HealthRecords      []HealthRecord       `gorm:"foreignKey:PatientID" json:"-"`
	ReceivedRequests   []MonitoringRequest  `gorm:"foreignKey:PatientID" json:"-"`
	SentRequests       []MonitoringRequest  `gorm:"foreignKey:RequesterID" json:"-"`
	MonitoredBy        []MonitoringRelation `gorm:"foreignKey:PatientID" json:"-"`
	MonitoringPatients []MonitoringRelation `gorm:"foreignKey:MonitorID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HealthInfo is the static-profile projection returned by the
// health-info endpoints.
type HealthInfo struct {
	Sex            *Sex            `json:"sex,omitempty"`
	BirthDate      *time.Time      `json:"birthDate,omitempty"`
	HeightCm       *int            `json:"heightCm,omitempty"`
	StrokeHistory  bool            `json:"strokeHistory"`
	Hypertension   bool            `json:"hypertension"`
	HeartDisease   bool            `json:"heartDisease"`
	Diabetes       bool            `json:"diabetes"`
	SmokingHistory *SmokingHistory `json:"smokingHistory,omitempty"`
	MeasuredAt     *time.Time      `json:"measuredAt,omitempty"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HealthInfo projects the static profile fields.
func (u *User) HealthInfo() HealthInfo {
	return HealthInfo{
		Sex:            u.Sex,
		BirthDate:      u.BirthDate,
		HeightCm:       u.HeightCm,
		StrokeHistory:  u.StrokeHistory,
		Hypertension:   u.Hypertension,
		HeartDisease:   u.HeartDisease,
		Diabetes:       u.Diabetes,
		SmokingHistory: u.SmokingHistory,
		MeasuredAt:     u.ProfileMeasuredAt,
	}
}
