package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/laborhub/domain"
)

// UserHandlers handles registration and the caller's own profile
type UserHandlers struct {
	authSvc domain.AuthService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService) *UserHandlers {
	return &UserHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Role  string `json:"role"`
	Pin   string `json:"pin" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields. Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ChangePinRequest represents a PIN change. OldPin is required once a PIN has been set.
type ChangePinRequest struct {
	OldPin string `json:"oldPin"`
	Pin    string `json:"pin" binding:"required"`
}

// Register handles user registration
func (h *UserHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name, phone and PIN are required")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Phone, req.Role, req.Pin)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": "User created",
			"user":    user.View(),
		},
	})
}

// Profile returns the authenticated user's profile
func (h *UserHandlers) Profile(c *gin.Context) {
	id, ok := domain.IdentityFromContext(c.Request.Context())
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user.View()})
}

// UpdateProfile edits the authenticated user's name and phone
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	id, ok := domain.IdentityFromContext(c.Request.Context())
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, updated, err := h.authSvc.UpdateProfile(c.Request.Context(), id.UserID, req.Name, req.Phone)
	if err != nil {
		writeError(c, err)
		return
	}

	if !updated {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"message": "No changes detected", "user": nil},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Profile updated successfully",
			"user":    user.View(),
		},
	})
}

// ChangePin sets or replaces the authenticated user's PIN
func (h *UserHandlers) ChangePin(c *gin.Context) {
	id, ok := domain.IdentityFromContext(c.Request.Context())
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	var req ChangePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "New PIN is required")
		return
	}

	if err := h.authSvc.ChangePin(c.Request.Context(), id.UserID, req.OldPin, req.Pin); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "PIN updated successfully"},
	})
}

// WhoAmI echoes the identity resolved by the auth middleware
func (h *UserHandlers) WhoAmI(c *gin.Context) {
	id, ok := domain.IdentityFromContext(c.Request.Context())
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": id})
}
