package handlers

import (
	"github.com/gin-gonic/gin"

	"strokewatch-server/internal/config"
	"strokewatch-server/internal/middleware"
	"strokewatch-server/internal/services"
	"strokewatch-server/internal/utils"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	Users *services.UserService
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Cfg: cfg}
}

// Register handles account creation. Patients must include the static
// health profile used by the risk scorer.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.Register(req)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "User registered successfully", user.Sanitize())
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"user":         user.Sanitize(),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken validates a refresh token and issues a fresh pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	user, err := h.Users.GetUser(claims.UserID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	utils.Success(c, "Token refreshed", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// GetProfile returns the authenticated user's account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	user, err := h.Users.GetUser(userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

// UpdateProfile updates the authenticated user's name and/or password.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	var req services.ProfileUpdate
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.UpdateProfile(userID, req)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Profile updated successfully", user.Sanitize())
}
