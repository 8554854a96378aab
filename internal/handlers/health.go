package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"strokewatch-server/internal/middleware"
	"strokewatch-server/internal/services"
	"strokewatch-server/internal/utils"
)

// HealthRecordHandler handles vitals submission and retrieval.
type HealthRecordHandler struct {
	Health *services.HealthService
}

// NewHealthRecordHandler creates a new HealthRecordHandler.
func NewHealthRecordHandler(health *services.HealthService) *HealthRecordHandler {
	return &HealthRecordHandler{Health: health}
}

// CreateRecord stores a vitals snapshot for the authenticated patient,
// with the stroke-risk score and level computed server-side.
func (h *HealthRecordHandler) CreateRecord(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	var req services.RecordInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	record, err := h.Health.CreateRecord(patientID, req)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Health record created successfully", record)
}

// ListRecords returns the authenticated patient's own series, newest first.
func (h *HealthRecordHandler) ListRecords(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	records, err := h.Health.ListRecords(patientID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Health records fetched successfully", records)
}

// LatestRecord returns the authenticated patient's newest record.
func (h *HealthRecordHandler) LatestRecord(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	record, err := h.Health.LatestRecord(patientID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Latest health record fetched successfully", record)
}

// DeleteRecord deletes one of the authenticated patient's records.
func (h *HealthRecordHandler) DeleteRecord(c *gin.Context) {
	recordID := c.Param("id")
	if _, err := uuid.Parse(recordID); err != nil {
		utils.BadRequest(c, "Invalid record ID format: "+recordID)
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	if err := h.Health.DeleteRecord(recordID, callerID); err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Health record deleted successfully", nil)
}

// MonitoredRecords returns a patient's series to an authorized monitor.
// The caller's token supplies the monitor identity.
func (h *HealthRecordHandler) MonitoredRecords(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid patient ID format: "+patientID)
		return
	}

	monitorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	records, err := h.Health.MonitoredRecords(monitorID, patientID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Patient health records fetched successfully", records)
}

// MonitoredLatest returns a patient's newest record to an authorized
// monitor.
func (h *HealthRecordHandler) MonitoredLatest(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid patient ID format: "+patientID)
		return
	}

	monitorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	record, err := h.Health.MonitoredLatest(monitorID, patientID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Latest patient health record fetched successfully", record)
}
