package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/laborhub/domain"
)

// OTPHandlers handles phone verification
type OTPHandlers struct {
	otpSvc domain.OTPService
}

// NewOTPHandlers creates new OTP handlers
func NewOTPHandlers(otpSvc domain.OTPService) *OTPHandlers {
	return &OTPHandlers{otpSvc: otpSvc}
}

// SendOTPRequest represents OTP send request
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest represents OTP verification request
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// Send requests a verification code for the phone
func (h *OTPHandlers) Send(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Phone number is required")
		return
	}

	if err := h.otpSvc.Send(c.Request.Context(), req.Phone); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "OTP sent successfully"},
	})
}

// Verify checks the code and activates the matching account. No tokens are
// issued here; the user logs in with their PIN afterwards.
func (h *OTPHandlers) Verify(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Phone and OTP are required")
		return
	}

	user, err := h.otpSvc.Verify(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "OTP verified successfully",
			"user":    user.View(),
		},
	})
}
