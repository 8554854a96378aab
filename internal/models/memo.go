package models

// Memo is a free-text note a doctor attaches to a patient they monitor.
type Memo struct {
	BaseModel
	DoctorID  string `gorm:"size:36;index" json:"doctorId"`
	PatientID string `gorm:"size:36;index" json:"patientId"`
	Content   string `gorm:"type:text" json:"content"`

	// Relations
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
