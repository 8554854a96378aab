// Package store defines the record-store collaborator the services run
// against, with a MySQL/gorm backend for production and an in-memory
// backend for tests and local development.
package store

import (
	"errors"

	"strokewatch-server/internal/models"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist,
	// including delete operations that affect zero rows.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint.
	ErrDuplicate = errors.New("store: duplicate")
)

// Store is the persistence contract consumed by the service layer.
// Listing operations return newest-first by creation time.
type Store interface {
	// Users
	CreateUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error

	// Health records
	InsertRecord(record *models.HealthRecord) error
	GetRecord(id string) (*models.HealthRecord, error)
	ListRecordsByUser(userID string) ([]models.HealthRecord, error)
	LatestRecordByUser(userID string) (*models.HealthRecord, error)
	DeleteRecord(id string) error

	// Monitoring requests
	InsertRequest(request *models.MonitoringRequest) error
	GetRequest(id string) (*models.MonitoringRequest, error)
	FindPendingRequest(patientID, requesterID string) (*models.MonitoringRequest, error)
	ListPendingRequestsForPatient(patientID string) ([]models.MonitoringRequest, error)
	ListRequestsByRequester(requesterID string) ([]models.MonitoringRequest, error)
	DeleteRequest(id string) error

	// ResolveRequest marks the request resolved and, when a relation is
	// given, inserts it in the same transaction.
	ResolveRequest(request *models.MonitoringRequest, relation *models.MonitoringRelation) error

	// Monitoring relations
	GetRelation(id string) (*models.MonitoringRelation, error)
	RelationExists(patientID, monitorID string) (bool, error)
	ListRelationsByPatient(patientID string) ([]models.MonitoringRelation, error)
	ListRelationsByMonitor(monitorID string) ([]models.MonitoringRelation, error)

	// RevokeRelation deletes the relation and its originating request in
	// the same transaction.
	RevokeRelation(relation *models.MonitoringRelation) error

	// Memos
	InsertMemo(memo *models.Memo) error
	GetMemo(id string) (*models.Memo, error)
	ListMemosByDoctor(doctorID string) ([]models.Memo, error)
	ListMemosByPatient(patientID string) ([]models.Memo, error)
	ListMemosByDoctorAndPatient(doctorID, patientID string) ([]models.Memo, error)
	DeleteMemo(id string) error
}
