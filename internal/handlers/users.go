package handlers

import (
	"github.com/gin-gonic/gin"

	"strokewatch-server/internal/middleware"
	"strokewatch-server/internal/services"
	"strokewatch-server/internal/utils"
)

// UserHandler handles the static health profile endpoints.
type UserHandler struct {
	Users *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetHealthInfo returns the authenticated patient's static profile.
func (h *UserHandler) GetHealthInfo(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	info, err := h.Users.GetHealthInfo(userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Health info fetched successfully", info)
}

// UpdateHealthInfo applies a partial update to the static profile. Stored
// measurement scores are never recomputed.
func (h *UserHandler) UpdateHealthInfo(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	var req services.HealthInfoUpdate
	if !utils.BindAndValidate(c, &req) {
		return
	}

	info, err := h.Users.UpdateHealthInfo(userID, req)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Health info updated successfully", info)
}
