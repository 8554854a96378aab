package services

import (
	"time"

	"go.uber.org/zap"

	"strokewatch-server/internal/models"
	"strokewatch-server/internal/risk"
	"strokewatch-server/internal/store"
)

// HealthService manages the vitals time series and gates non-owner access
// behind monitoring relations. Self-access never consults relations; the
// monitored paths check the grant first and fail Forbidden without one.
type HealthService struct {
	store store.Store
	log   *zap.Logger
}

// NewHealthService creates a HealthService.
func NewHealthService(s store.Store, log *zap.Logger) *HealthService {
	return &HealthService{store: s, log: log}
}

// RecordInput is a vitals snapshot submitted by a patient. Every field is
// optional; an absent measurement scores zero instead of erroring.
type RecordInput struct {
	WeightKg     *float64 `json:"weightKg" binding:"omitempty,gt=0"`
	SystolicBP   *int     `json:"systolicBp" binding:"omitempty,gt=0"`
	DiastolicBP  *int     `json:"diastolicBp" binding:"omitempty,gt=0"`
	GlucoseLevel *int     `json:"glucoseLevel" binding:"omitempty,gte=0"`
	Smoking      *int     `json:"smoking" binding:"omitempty,gte=0"` // cigarettes per day
}

// CreateRecord scores the vitals against the patient's static profile and
// persists the snapshot with the derived score and level.
func (s *HealthService) CreateRecord(patientID string, input RecordInput) (*models.HealthRecord, error) {
	patient, err := s.store.GetUser(patientID)
	if err != nil {
		return nil, fromStore(err)
	}
	if patient.Role != models.RolePatient {
		return nil, ErrInvalidRole
	}

	score, level := risk.Assess(profileOf(patient), risk.Vitals{
		WeightKg:         input.WeightKg,
		SystolicBP:       input.SystolicBP,
		DiastolicBP:      input.DiastolicBP,
		GlucoseLevel:     input.GlucoseLevel,
		CigarettesPerDay: input.Smoking,
	}, time.Now())

	record := &models.HealthRecord{
		PatientID:    patientID,
		WeightKg:     input.WeightKg,
		SystolicBP:   input.SystolicBP,
		DiastolicBP:  input.DiastolicBP,
		GlucoseLevel: input.GlucoseLevel,
		Smoking:      input.Smoking,
		RiskScore:    score,
		RiskLevel:    level,
	}
	if err := s.store.InsertRecord(record); err != nil {
		return nil, fromStore(err)
	}

	s.log.Info("health record created",
		zap.String("record_id", record.ID),
		zap.String("patient_id", patientID),
		zap.Float64("risk_score", score),
		zap.String("risk_level", string(level)))
	return record, nil
}

// ListRecords returns the patient's own series, newest first.
func (s *HealthService) ListRecords(patientID string) ([]models.HealthRecord, error) {
	records, err := s.store.ListRecordsByUser(patientID)
	return records, fromStore(err)
}

// LatestRecord returns the patient's newest record, ErrNotFound when the
// series is empty.
func (s *HealthService) LatestRecord(patientID string) (*models.HealthRecord, error) {
	record, err := s.store.LatestRecordByUser(patientID)
	if err != nil {
		return nil, fromStore(err)
	}
	return record, nil
}

// DeleteRecord removes a record. Only its owner may delete it.
func (s *HealthService) DeleteRecord(recordID, callerID string) error {
	record, err := s.store.GetRecord(recordID)
	if err != nil {
		return fromStore(err)
	}
	if record.PatientID != callerID {
		return ErrForbidden
	}
	return fromStore(s.store.DeleteRecord(recordID))
}

// MonitoredRecords returns a patient's series to a monitor holding an
// active relation; without one it fails Forbidden regardless of whether
// the patient has any records.
func (s *HealthService) MonitoredRecords(monitorID, patientID string) ([]models.HealthRecord, error) {
	if err := s.requireRelation(monitorID, patientID); err != nil {
		return nil, err
	}
	return s.ListRecords(patientID)
}

// MonitoredLatest returns a patient's newest record to an authorized
// monitor.
func (s *HealthService) MonitoredLatest(monitorID, patientID string) (*models.HealthRecord, error) {
	if err := s.requireRelation(monitorID, patientID); err != nil {
		return nil, err
	}
	return s.LatestRecord(patientID)
}

func (s *HealthService) requireRelation(monitorID, patientID string) error {
	exists, err := s.store.RelationExists(patientID, monitorID)
	if err != nil {
		return fromStore(err)
	}
	if !exists {
		return ErrForbidden
	}
	return nil
}

// profileOf projects a user's static attributes into scorer inputs.
// Missing profile fields degrade to their zero contributions rather than
// failing the measurement.
func profileOf(u *models.User) risk.Profile {
	p := risk.Profile{
		StrokeHistory: u.StrokeHistory,
		Hypertension:  u.Hypertension,
		HeartDisease:  u.HeartDisease,
		Diabetes:      u.Diabetes,
		HeightCm:      u.HeightCm,
	}
	if u.Sex != nil {
		p.Sex = string(*u.Sex)
	}
	if u.BirthDate != nil {
		p.BirthDate = *u.BirthDate
	} else {
		p.BirthDate = time.Now()
	}
	if u.SmokingHistory != nil {
		p.SmokingHistory = string(*u.SmokingHistory)
	} else {
		p.SmokingHistory = risk.NonSmoker
	}
	return p
}
