package store

import (
	"errors"

	"gorm.io/gorm"

	"strokewatch-server/internal/models"
)

// gormStore implements Store on top of a gorm MySQL connection.
type gormStore struct {
	db *gorm.DB
}

// NewGorm wraps an initialized gorm connection as a Store.
func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (s *gormStore) CreateUser(user *models.User) error {
	return translate(s.db.Create(user).Error)
}

func (s *gormStore) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UpdateUser(user *models.User) error {
	return translate(s.db.Save(user).Error)
}

func (s *gormStore) InsertRecord(record *models.HealthRecord) error {
	return translate(s.db.Create(record).Error)
}

func (s *gormStore) GetRecord(id string) (*models.HealthRecord, error) {
	var record models.HealthRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *gormStore) ListRecordsByUser(userID string) ([]models.HealthRecord, error) {
	var records []models.HealthRecord
	err := s.db.Where("patient_id = ?", userID).Order("created_at desc").Find(&records).Error
	return records, translate(err)
}

func (s *gormStore) LatestRecordByUser(userID string) (*models.HealthRecord, error) {
	var record models.HealthRecord
	err := s.db.Where("patient_id = ?", userID).Order("created_at desc").First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *gormStore) DeleteRecord(id string) error {
	return s.deleteByID(&models.HealthRecord{}, id)
}

func (s *gormStore) InsertRequest(request *models.MonitoringRequest) error {
	return translate(s.db.Create(request).Error)
}

func (s *gormStore) GetRequest(id string) (*models.MonitoringRequest, error) {
	var request models.MonitoringRequest
	if err := s.db.First(&request, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (s *gormStore) FindPendingRequest(patientID, requesterID string) (*models.MonitoringRequest, error) {
	var request models.MonitoringRequest
	err := s.db.
		Where("patient_id = ? AND requester_id = ? AND status = ?",
			patientID, requesterID, models.MonitoringPending).
		First(&request).Error
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (s *gormStore) ListPendingRequestsForPatient(patientID string) ([]models.MonitoringRequest, error) {
	var requests []models.MonitoringRequest
	err := s.db.
		Where("patient_id = ? AND status = ?", patientID, models.MonitoringPending).
		Order("created_at desc").
		Find(&requests).Error
	return requests, translate(err)
}

func (s *gormStore) ListRequestsByRequester(requesterID string) ([]models.MonitoringRequest, error) {
	var requests []models.MonitoringRequest
	err := s.db.Where("requester_id = ?", requesterID).Order("created_at desc").Find(&requests).Error
	return requests, translate(err)
}

func (s *gormStore) DeleteRequest(id string) error {
	return s.deleteByID(&models.MonitoringRequest{}, id)
}

func (s *gormStore) ResolveRequest(request *models.MonitoringRequest, relation *models.MonitoringRelation) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(request).Error; err != nil {
			return err
		}
		if relation != nil {
			if err := tx.Create(relation).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

func (s *gormStore) GetRelation(id string) (*models.MonitoringRelation, error) {
	var relation models.MonitoringRelation
	if err := s.db.First(&relation, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &relation, nil
}

func (s *gormStore) RelationExists(patientID, monitorID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.MonitoringRelation{}).
		Where("patient_id = ? AND monitor_id = ?", patientID, monitorID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *gormStore) ListRelationsByPatient(patientID string) ([]models.MonitoringRelation, error) {
	var relations []models.MonitoringRelation
	err := s.db.Where("patient_id = ?", patientID).Order("created_at desc").Find(&relations).Error
	return relations, translate(err)
}

func (s *gormStore) ListRelationsByMonitor(monitorID string) ([]models.MonitoringRelation, error) {
	var relations []models.MonitoringRelation
	err := s.db.Where("monitor_id = ?", monitorID).Order("created_at desc").Find(&relations).Error
	return relations, translate(err)
}

func (s *gormStore) RevokeRelation(relation *models.MonitoringRelation) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.MonitoringRelation{}, "id = ?", relation.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if relation.RequestID != "" {
			// The originating request goes with the relation; it may
			// already be gone, which is fine.
			if err := tx.Delete(&models.MonitoringRequest{}, "id = ?", relation.RequestID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

func (s *gormStore) InsertMemo(memo *models.Memo) error {
	return translate(s.db.Create(memo).Error)
}

func (s *gormStore) GetMemo(id string) (*models.Memo, error) {
	var memo models.Memo
	if err := s.db.First(&memo, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &memo, nil
}

func (s *gormStore) ListMemosByDoctor(doctorID string) ([]models.Memo, error) {
	var memos []models.Memo
	err := s.db.Where("doctor_id = ?", doctorID).Order("created_at desc").Find(&memos).Error
	return memos, translate(err)
}

func (s *gormStore) ListMemosByPatient(patientID string) ([]models.Memo, error) {
	var memos []models.Memo
	err := s.db.Where("patient_id = ?", patientID).Order("created_at desc").Find(&memos).Error
	return memos, translate(err)
}

func (s *gormStore) ListMemosByDoctorAndPatient(doctorID, patientID string) ([]models.Memo, error) {
	var memos []models.Memo
	err := s.db.
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Order("created_at desc").
		Find(&memos).Error
	return memos, translate(err)
}

func (s *gormStore) DeleteMemo(id string) error {
	return s.deleteByID(&models.Memo{}, id)
}

// deleteByID deletes a row by primary key, reporting zero rows affected as
// ErrNotFound so double-deletes are visible to callers.
func (s *gormStore) deleteByID(model interface{}, id string) error {
	result := s.db.Delete(model, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
