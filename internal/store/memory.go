package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"strokewatch-server/internal/models"
)

// memoryStore is a mutex-guarded in-memory Store used by tests and local
// development. Entities live in insertion-order slices, so newest-first
// listings fall out of walking each slice backwards; creation timestamps
// only ever grow.
type memoryStore struct {
	mu        sync.RWMutex
	users     []models.User
	records   []models.HealthRecord
	requests  []models.MonitoringRequest
	relations []models.MonitoringRelation
	memos     []models.Memo
}

// NewMemory returns an empty in-memory Store.
func NewMemory() Store {
	return &memoryStore{}
}

func stamp(base *models.BaseModel) {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func (s *memoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == user.Email {
			return ErrDuplicate
		}
	}
	stamp(&user.BaseModel)
	s.users = append(s.users, *user)
	return nil
}

func (s *memoryStore) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			s.users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryStore) InsertRecord(record *models.HealthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&record.BaseModel)
	s.records = append(s.records, *record)
	return nil
}

func (s *memoryStore) GetRecord(id string) (*models.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ID == id {
			r := s.records[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) ListRecordsByUser(userID string) ([]models.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.HealthRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].PatientID == userID {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *memoryStore) LatestRecordByUser(userID string) (*models.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].PatientID == userID {
			r := s.records[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) DeleteRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryStore) InsertRequest(request *models.MonitoringRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&request.BaseModel)
	s.requests = append(s.requests, *request)
	return nil
}

func (s *memoryStore) GetRequest(id string) (*models.MonitoringRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRequestLocked(id)
}

func (s *memoryStore) getRequestLocked(id string) (*models.MonitoringRequest, error) {
	for i := range s.requests {
		if s.requests[i].ID == id {
			r := s.requests[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) FindPendingRequest(patientID, requesterID string) (*models.MonitoringRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.requests {
		r := s.requests[i]
		if r.PatientID == patientID && r.RequesterID == requesterID && r.Status == models.MonitoringPending {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) ListPendingRequestsForPatient(patientID string) ([]models.MonitoringRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MonitoringRequest
	for i := len(s.requests) - 1; i >= 0; i-- {
		r := s.requests[i]
		if r.PatientID == patientID && r.Status == models.MonitoringPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) ListRequestsByRequester(requesterID string) ([]models.MonitoringRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MonitoringRequest
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].RequesterID == requesterID {
			out = append(out, s.requests[i])
		}
	}
	return out, nil
}

func (s *memoryStore) DeleteRequest(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteRequestLocked(id)
}

func (s *memoryStore) deleteRequestLocked(id string) error {
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryStore) ResolveRequest(request *models.MonitoringRequest, relation *models.MonitoringRelation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.requests {
		if s.requests[i].ID == request.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if relation != nil {
		for i := range s.relations {
			if s.relations[i].PatientID == relation.PatientID && s.relations[i].MonitorID == relation.MonitorID {
				return ErrDuplicate
			}
		}
		stamp(&relation.BaseModel)
		s.relations = append(s.relations, *relation)
	}
	request.UpdatedAt = time.Now()
	s.requests[idx] = *request
	return nil
}

func (s *memoryStore) GetRelation(id string) (*models.MonitoringRelation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.relations {
		if s.relations[i].ID == id {
			r := s.relations[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) RelationExists(patientID, monitorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.relations {
		if s.relations[i].PatientID == patientID && s.relations[i].MonitorID == monitorID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) ListRelationsByPatient(patientID string) ([]models.MonitoringRelation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MonitoringRelation
	for i := len(s.relations) - 1; i >= 0; i-- {
		if s.relations[i].PatientID == patientID {
			out = append(out, s.relations[i])
		}
	}
	return out, nil
}

func (s *memoryStore) ListRelationsByMonitor(monitorID string) ([]models.MonitoringRelation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MonitoringRelation
	for i := len(s.relations) - 1; i >= 0; i-- {
		if s.relations[i].MonitorID == monitorID {
			out = append(out, s.relations[i])
		}
	}
	return out, nil
}

func (s *memoryStore) RevokeRelation(relation *models.MonitoringRelation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.relations {
		if s.relations[i].ID == relation.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.relations = append(s.relations[:idx], s.relations[idx+1:]...)
	if relation.RequestID != "" {
		// Best effort: the request may already be gone.
		_ = s.deleteRequestLocked(relation.RequestID)
	}
	return nil
}

func (s *memoryStore) InsertMemo(memo *models.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&memo.BaseModel)
	s.memos = append(s.memos, *memo)
	return nil
}

func (s *memoryStore) GetMemo(id string) (*models.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.memos {
		if s.memos[i].ID == id {
			m := s.memos[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) ListMemosByDoctor(doctorID string) ([]models.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Memo
	for i := len(s.memos) - 1; i >= 0; i-- {
		if s.memos[i].DoctorID == doctorID {
			out = append(out, s.memos[i])
		}
	}
	return out, nil
}

func (s *memoryStore) ListMemosByPatient(patientID string) ([]models.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Memo
	for i := len(s.memos) - 1; i >= 0; i-- {
		if s.memos[i].PatientID == patientID {
			out = append(out, s.memos[i])
		}
	}
	return out, nil
}

func (s *memoryStore) ListMemosByDoctorAndPatient(doctorID, patientID string) ([]models.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Memo
	for i := len(s.memos) - 1; i >= 0; i-- {
		if s.memos[i].DoctorID == doctorID && s.memos[i].PatientID == patientID {
			out = append(out, s.memos[i])
		}
	}
	return out, nil
}

func (s *memoryStore) DeleteMemo(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.memos {
		if s.memos[i].ID == id {
			s.memos = append(s.memos[:i], s.memos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
