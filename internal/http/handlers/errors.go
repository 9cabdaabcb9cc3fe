package handlers

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/you/laborhub/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
	msg    string
}

// errorMappings is checked in order; the first errors.Is match wins
var errorMappings = []errorMapping{
	{domain.ErrServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable", "Service temporarily unavailable"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user_not_found", "User not found"},
	{domain.ErrUserAlreadyExists, http.StatusConflict, "user_exists", "User already exists"},
	{domain.ErrNotApproved, http.StatusForbidden, "not_approved", "User not approved yet"},
	{domain.ErrAccountDisabled, http.StatusForbidden, "account_disabled", "Account is disabled"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials"},
	{domain.ErrMissingRefreshToken, http.StatusUnauthorized, "missing_refresh_token", "No refresh token provided"},
	{domain.ErrRefreshTokenInvalid, http.StatusUnauthorized, "refresh_token_invalid", "Invalid refresh token"},
	{domain.ErrRefreshTokenRevoked, http.StatusUnauthorized, "refresh_token_revoked", "Refresh token revoked or missing"},
	{domain.ErrRefreshTokenExpired, http.StatusUnauthorized, "refresh_token_expired", "Refresh token expired"},
	{domain.ErrOTPInvalid, http.StatusBadRequest, "otp_invalid", "Invalid verification code"},
	{domain.ErrOTPMaxAttempts, http.StatusTooManyRequests, "otp_max_attempts", "Too many verification attempts"},
	{domain.ErrOTPResendLimit, http.StatusTooManyRequests, "otp_resend_limit", "Please wait before requesting another code"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "Authentication required"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden", "Access Denied"},
}

// writeError maps a service error to its HTTP status and a
// {"error", "code"} body. Unknown errors become a generic 500 so store
// details never reach clients.
func writeError(c *gin.Context, err error) {
	// validation messages are written for the caller
	if errors.Is(err, domain.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation_error"})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				reportError(c, err)
			}
			c.JSON(m.status, gin.H{"error": m.msg, "code": m.code})
			return
		}
	}

	reportError(c, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal_error"})
}

// reportError keeps the cause of a 5xx for the request logger and Sentry;
// the client only sees the generic message.
func reportError(c *gin.Context, err error) {
	_ = c.Error(err)
	sentry.CaptureException(err)
}

// badRequest reports a body that could not be bound
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "validation_error"})
}
