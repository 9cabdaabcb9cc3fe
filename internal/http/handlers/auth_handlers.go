package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/laborhub/domain"
)

// AuthHandlers handles login, refresh and logout
type AuthHandlers struct {
	authSvc domain.AuthService
	cookies CookieOptions
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, cookies CookieOptions) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		cookies: cookies,
	}
}

// LoginRequest represents login request
type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	Pin   string `json:"pin" binding:"required"`
}

// Login handles phone + PIN login. The refresh token is only ever sent as
// an HttpOnly cookie, never in the body.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Phone and PIN are required")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Phone, req.Pin)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookies.setRefreshToken(c, result.RefreshToken, result.RefreshTokenExpiresAt)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Login successful",
			"user":    result.User.View(),
			"tokens":  tokenBody(result),
		},
	})
}

// Refresh rotates the refresh token cookie and returns a new access token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	result, err := h.authSvc.Refresh(c.Request.Context(), refreshTokenFromCookie(c))
	if err != nil {
		// a refresh that fails on the account is an auth failure: 401, never 403/404
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "code": "user_not_found"})
		case errors.Is(err, domain.ErrAccountDisabled):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled", "code": "account_disabled"})
		default:
			writeError(c, err)
		}
		return
	}

	h.cookies.setRefreshToken(c, result.RefreshToken, result.RefreshTokenExpiresAt)
	c.JSON(http.StatusOK, gin.H{
		"data": tokenBody(result),
	})
}

// Logout revokes the presented refresh token, if any, and clears the cookie.
// It always succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	h.authSvc.Logout(c.Request.Context(), refreshTokenFromCookie(c))

	h.cookies.clearRefreshToken(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out",
		},
	})
}

func tokenBody(result *domain.AuthResult) gin.H {
	return gin.H{
		"accessToken": result.AccessToken,
		"tokenType":   "Bearer",
		"expiresIn":   result.AccessTokenExpiresIn,
	}
}
