package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"strokewatch-server/internal/middleware"
	"strokewatch-server/internal/services"
	"strokewatch-server/internal/utils"
)

// MemoHandler handles doctor memos on monitored patients.
type MemoHandler struct {
	Memos *services.MemoService
}

// NewMemoHandler creates a new MemoHandler.
func NewMemoHandler(memos *services.MemoService) *MemoHandler {
	return &MemoHandler{Memos: memos}
}

// CreateMemoRequest represents the request body for creating a memo.
type CreateMemoRequest struct {
	PatientID string `json:"patientId" binding:"required,uuid"`
	Content   string `json:"content" binding:"required"`
}

// CreateMemo attaches a note from the authenticated doctor to a patient
// they monitor.
func (h *MemoHandler) CreateMemo(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	var req CreateMemoRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	memo, err := h.Memos.CreateMemo(doctorID, req.PatientID, req.Content)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Memo created successfully", memo)
}

// GetMemo fetches a single memo readable by its author or subject.
func (h *MemoHandler) GetMemo(c *gin.Context) {
	memoID := c.Param("id")
	if _, err := uuid.Parse(memoID); err != nil {
		utils.BadRequest(c, "Invalid memo ID format: "+memoID)
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	memo, err := h.Memos.GetMemo(memoID, callerID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Memo fetched successfully", memo)
}

// ListMemos returns memos visible to the caller; doctors may filter by
// patient via the patient_id query parameter.
func (h *MemoHandler) ListMemos(c *gin.Context) {
	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	memos, err := h.Memos.ListMemos(callerID, c.Query("patient_id"))
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Memos fetched successfully", memos)
}

// DeleteMemo removes a memo authored by the caller.
func (h *MemoHandler) DeleteMemo(c *gin.Context) {
	memoID := c.Param("id")
	if _, err := uuid.Parse(memoID); err != nil {
		utils.BadRequest(c, "Invalid memo ID format: "+memoID)
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	if err := h.Memos.DeleteMemo(memoID, callerID); err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Memo deleted successfully", nil)
}
