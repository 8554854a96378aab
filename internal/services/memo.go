package services

import (
	"go.uber.org/zap"

	"strokewatch-server/internal/models"
	"strokewatch-server/internal/store"
)

// MemoService manages doctor notes on monitored patients. Writing a memo
// requires an active monitoring relation between the doctor and the
// patient; reading is scoped to the memo's author or its subject.
type MemoService struct {
	store store.Store
	log   *zap.Logger
}

// NewMemoService creates a MemoService.
func NewMemoService(s store.Store, log *zap.Logger) *MemoService {
	return &MemoService{store: s, log: log}
}

// CreateMemo attaches a note from a doctor to a patient they monitor.
func (s *MemoService) CreateMemo(doctorID, patientID, content string) (*models.Memo, error) {
	doctor, err := s.store.GetUser(doctorID)
	if err != nil {
		return nil, fromStore(err)
	}
	if doctor.Role != models.RoleDoctor {
		return nil, ErrInvalidRole
	}

	patient, err := s.store.GetUser(patientID)
	if err != nil {
		return nil, fromStore(err)
	}
	if patient.Role != models.RolePatient {
		return nil, ErrInvalidRole
	}

	exists, err := s.store.RelationExists(patientID, doctorID)
	if err != nil {
		return nil, fromStore(err)
	}
	if !exists {
		return nil, ErrForbidden
	}

	memo := &models.Memo{
		DoctorID:  doctorID,
		PatientID: patientID,
		Content:   content,
	}
	if err := s.store.InsertMemo(memo); err != nil {
		return nil, fromStore(err)
	}
	s.log.Info("memo created",
		zap.String("memo_id", memo.ID),
		zap.String("doctor_id", doctorID),
		zap.String("patient_id", patientID))
	return memo, nil
}

// GetMemo fetches a memo readable by its author or its subject.
func (s *MemoService) GetMemo(memoID, callerID string) (*models.Memo, error) {
	memo, err := s.store.GetMemo(memoID)
	if err != nil {
		return nil, fromStore(err)
	}
	if memo.DoctorID != callerID && memo.PatientID != callerID {
		return nil, ErrForbidden
	}
	return memo, nil
}

// ListMemos returns memos visible to the caller, newest first. Doctors see
// their own notes, optionally filtered to one patient; patients see the
// notes written about them.
func (s *MemoService) ListMemos(callerID, patientFilter string) ([]models.Memo, error) {
	caller, err := s.store.GetUser(callerID)
	if err != nil {
		return nil, fromStore(err)
	}
	switch caller.Role {
	case models.RoleDoctor:
		if patientFilter != "" {
			memos, err := s.store.ListMemosByDoctorAndPatient(callerID, patientFilter)
			return memos, fromStore(err)
		}
		memos, err := s.store.ListMemosByDoctor(callerID)
		return memos, fromStore(err)
	case models.RolePatient:
		memos, err := s.store.ListMemosByPatient(callerID)
		return memos, fromStore(err)
	default:
		return nil, ErrInvalidRole
	}
}

// DeleteMemo removes a memo; only its author may delete it.
func (s *MemoService) DeleteMemo(memoID, callerID string) error {
	memo, err := s.store.GetMemo(memoID)
	if err != nil {
		return fromStore(err)
	}
	if memo.DoctorID != callerID {
		return ErrForbidden
	}
	return fromStore(s.store.DeleteMemo(memoID))
}
