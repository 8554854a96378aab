package services

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"strokewatch-server/internal/models"
	"strokewatch-server/internal/store"
)

// MonitoringService runs the consent state machine over monitoring
// requests and relations. Requests move PENDING -> {APPROVED, REJECTED}
// exactly once, or are deleted while PENDING (cancel). An approval creates
// a relation; revoking a relation purges it together with its originating
// request so the pair becomes eligible again.
type MonitoringService struct {
	store store.Store
	log   *zap.Logger
}

// NewMonitoringService creates a MonitoringService.
func NewMonitoringService(s store.Store, log *zap.Logger) *MonitoringService {
	return &MonitoringService{store: s, log: log}
}

// CreateRequest files a new PENDING monitoring request from requester to
// patient. The patient must hold the PATIENT role and the requester DOCTOR
// or CAREGIVER; an existing pending request or active relation for the
// pair is a conflict.
func (s *MonitoringService) CreateRequest(patientID, requesterID string) (*models.MonitoringRequestView, error) {
	patient, err := s.store.GetUser(patientID)
	if err != nil {
		return nil, fromStore(err)
	}
	if patient.Role != models.RolePatient {
		return nil, ErrInvalidRole
	}

	requester, err := s.store.GetUser(requesterID)
	if err != nil {
		return nil, fromStore(err)
	}
	if requester.Role != models.RoleDoctor && requester.Role != models.RoleCaregiver {
		return nil, ErrInvalidRole
	}

	if _, err := s.store.FindPendingRequest(patientID, requesterID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fromStore(err)
	}

	exists, err := s.store.RelationExists(patientID, requesterID)
	if err != nil {
		return nil, fromStore(err)
	}
	if exists {
		return nil, ErrConflict
	}

	request := &models.MonitoringRequest{
		PatientID:   patientID,
		RequesterID: requesterID,
		Status:      models.MonitoringPending,
	}
	if err := s.store.InsertRequest(request); err != nil {
		return nil, fromStore(err)
	}

	s.log.Info("monitoring request created",
		zap.String("request_id", request.ID),
		zap.String("patient_id", patientID),
		zap.String("requester_id", requesterID))

	view := requestView(request)
	view.PatientName = patient.Name
	view.RequesterName = requester.Name
	view.RequesterRole = requester.Role
	return &view, nil
}

// ResolveRequest approves or rejects a pending request. Only the patient
// named on the request may resolve it, and only once: a resolved request
// never transitions again. Approval stamps the response time and creates
// the relation in the same store transaction.
func (s *MonitoringService) ResolveRequest(requestID, callerID string, approved bool) (*models.MonitoringRequestView, error) {
	request, err := s.store.GetRequest(requestID)
	if err != nil {
		return nil, fromStore(err)
	}
	if request.PatientID != callerID {
		return nil, ErrForbidden
	}
	if request.Status != models.MonitoringPending {
		return nil, ErrInvalidState
	}

	now := time.Now()
	request.RespondedAt = &now

	var relation *models.MonitoringRelation
	if approved {
		request.Status = models.MonitoringApproved
		relation = &models.MonitoringRelation{
			PatientID: request.PatientID,
			MonitorID: request.RequesterID,
			RequestID: request.ID,
			GrantedAt: now,
		}
	} else {
		request.Status = models.MonitoringRejected
	}

	if err := s.store.ResolveRequest(request, relation); err != nil {
		return nil, fromStore(err)
	}

	s.log.Info("monitoring request resolved",
		zap.String("request_id", request.ID),
		zap.String("status", string(request.Status)))

	view := requestView(request)
	if patient, err := s.store.GetUser(request.PatientID); err == nil {
		view.PatientName = patient.Name
	}
	if requester, err := s.store.GetUser(request.RequesterID); err == nil {
		view.RequesterName = requester.Name
		view.RequesterRole = requester.Role
	}
	return &view, nil
}

// CancelRequest deletes an undecided request. Only the requester who sent
// it may cancel, and only while it is still PENDING.
func (s *MonitoringService) CancelRequest(requestID, callerID string) error {
	request, err := s.store.GetRequest(requestID)
	if err != nil {
		return fromStore(err)
	}
	if request.RequesterID != callerID {
		return ErrForbidden
	}
	if request.Status != models.MonitoringPending {
		return ErrInvalidState
	}
	return fromStore(s.store.DeleteRequest(requestID))
}

// RevokeRelation removes an active grant along with its originating
// request. Either party to the relation may revoke it.
func (s *MonitoringService) RevokeRelation(relationID, callerID string) error {
	relation, err := s.store.GetRelation(relationID)
	if err != nil {
		return fromStore(err)
	}
	if relation.PatientID != callerID && relation.MonitorID != callerID {
		return ErrForbidden
	}
	if err := s.store.RevokeRelation(relation); err != nil {
		return fromStore(err)
	}
	s.log.Info("monitoring relation revoked",
		zap.String("relation_id", relationID),
		zap.String("by", callerID))
	return nil
}

// ListPending returns the patient's undecided inbound requests, newest
// first, each annotated with the requester's name and role. Requests whose
// requester no longer resolves are dropped from the listing.
func (s *MonitoringService) ListPending(patientID string) ([]models.MonitoringRequestView, error) {
	requests, err := s.store.ListPendingRequestsForPatient(patientID)
	if err != nil {
		return nil, fromStore(err)
	}
	views := make([]models.MonitoringRequestView, 0, len(requests))
	for i := range requests {
		requester, err := s.store.GetUser(requests[i].RequesterID)
		if err != nil {
			continue
		}
		view := requestView(&requests[i])
		view.RequesterName = requester.Name
		view.RequesterRole = requester.Role
		views = append(views, view)
	}
	return views, nil
}

// ListSent returns every request the requester has filed, all statuses,
// newest first, annotated with each patient's name. Requests whose patient
// no longer resolves are dropped.
func (s *MonitoringService) ListSent(requesterID string) ([]models.MonitoringRequestView, error) {
	requests, err := s.store.ListRequestsByRequester(requesterID)
	if err != nil {
		return nil, fromStore(err)
	}
	views := make([]models.MonitoringRequestView, 0, len(requests))
	for i := range requests {
		patient, err := s.store.GetUser(requests[i].PatientID)
		if err != nil {
			continue
		}
		view := requestView(&requests[i])
		view.PatientName = patient.Name
		views = append(views, view)
	}
	return views, nil
}

// ListRelationsForPatient returns who monitors the patient.
func (s *MonitoringService) ListRelationsForPatient(patientID string) ([]models.MonitoringRelationView, error) {
	relations, err := s.store.ListRelationsByPatient(patientID)
	if err != nil {
		return nil, fromStore(err)
	}
	views := make([]models.MonitoringRelationView, 0, len(relations))
	for i := range relations {
		monitor, err := s.store.GetUser(relations[i].MonitorID)
		if err != nil {
			continue
		}
		view := relationView(&relations[i])
		view.MonitorName = monitor.Name
		view.MonitorRole = monitor.Role
		views = append(views, view)
	}
	return views, nil
}

// ListRelationsForMonitor returns the patients a monitor watches.
func (s *MonitoringService) ListRelationsForMonitor(monitorID string) ([]models.MonitoringRelationView, error) {
	relations, err := s.store.ListRelationsByMonitor(monitorID)
	if err != nil {
		return nil, fromStore(err)
	}
	views := make([]models.MonitoringRelationView, 0, len(relations))
	for i := range relations {
		patient, err := s.store.GetUser(relations[i].PatientID)
		if err != nil {
			continue
		}
		view := relationView(&relations[i])
		view.PatientName = patient.Name
		views = append(views, view)
	}
	return views, nil
}

func requestView(r *models.MonitoringRequest) models.MonitoringRequestView {
	return models.MonitoringRequestView{
		ID:          r.ID,
		PatientID:   r.PatientID,
		RequesterID: r.RequesterID,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
	}
}

func relationView(r *models.MonitoringRelation) models.MonitoringRelationView {
	return models.MonitoringRelationView{
		ID:        r.ID,
		PatientID: r.PatientID,
		MonitorID: r.MonitorID,
		GrantedAt: r.GrantedAt,
	}
}
