package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"strokewatch-server/internal/middleware"
	"strokewatch-server/internal/services"
	"strokewatch-server/internal/utils"
)

// MonitoringHandler handles consent requests and relations.
type MonitoringHandler struct {
	Monitoring *services.MonitoringService
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(monitoring *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{Monitoring: monitoring}
}

// CreateRequestBody represents the request body for creating a monitoring request.
type CreateRequestBody struct {
	PatientID string `json:"patientId" binding:"required,uuid"`
}

// CreateRequest files a monitoring request from the authenticated doctor
// or caregiver to a patient.
func (h *MonitoringHandler) CreateRequest(c *gin.Context) {
	requesterID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	var req CreateRequestBody
	if !utils.BindAndValidate(c, &req) {
		return
	}

	view, err := h.Monitoring.CreateRequest(req.PatientID, requesterID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Monitoring request created successfully", view)
}

// ResolveRequestBody represents the approval decision body.
type ResolveRequestBody struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ResolveRequest lets the patient approve or reject a pending request.
func (h *MonitoringHandler) ResolveRequest(c *gin.Context) {
	requestID := c.Param("id")
	if _, err := uuid.Parse(requestID); err != nil {
		utils.BadRequest(c, "Invalid request ID format: "+requestID)
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	var req ResolveRequestBody
	if !utils.BindAndValidate(c, &req) {
		return
	}

	view, err := h.Monitoring.ResolveRequest(requestID, callerID, *req.Approved)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Monitoring request resolved successfully", view)
}

// CancelRequest deletes the authenticated requester's pending request.
func (h *MonitoringHandler) CancelRequest(c *gin.Context) {
	requestID := c.Param("id")
	if _, err := uuid.Parse(requestID); err != nil {
		utils.BadRequest(c, "Invalid request ID format: "+requestID)
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	if err := h.Monitoring.CancelRequest(requestID, callerID); err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Monitoring request cancelled successfully", nil)
}

// ListPending returns the authenticated patient's undecided inbound
// requests.
func (h *MonitoringHandler) ListPending(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	views, err := h.Monitoring.ListPending(patientID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Pending monitoring requests fetched successfully", views)
}

// ListSent returns every request the authenticated requester has filed.
func (h *MonitoringHandler) ListSent(c *gin.Context) {
	requesterID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	views, err := h.Monitoring.ListSent(requesterID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Sent monitoring requests fetched successfully", views)
}

// ListRelations returns who monitors the authenticated patient.
func (h *MonitoringHandler) ListRelations(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	views, err := h.Monitoring.ListRelationsForPatient(patientID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Monitoring relations fetched successfully", views)
}

// ListMonitoredPatients returns the patients the authenticated monitor
// watches.
func (h *MonitoringHandler) ListMonitoredPatients(c *gin.Context) {
	monitorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	views, err := h.Monitoring.ListRelationsForMonitor(monitorID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Monitored patients fetched successfully", views)
}

// RevokeRelation removes an active grant; either party may revoke.
func (h *MonitoringHandler) RevokeRelation(c *gin.Context) {
	relationID := c.Param("id")
	if _, err := uuid.Parse(relationID); err != nil {
		utils.BadRequest(c, "Invalid relation ID format: "+relationID)
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	if err := h.Monitoring.RevokeRelation(relationID, callerID); err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Monitoring relation revoked successfully", nil)
}
