package domain

import "errors"

// Request errors
var (
	ErrValidation         = errors.New("validation failed")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Authentication errors
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrNotApproved        = errors.New("user not approved yet")
	ErrAccountDisabled    = errors.New("user account is disabled")
)

// OTP errors
var (
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrSigning        = errors.New("token signing failed")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Refresh token errors
var (
	ErrMissingRefreshToken = errors.New("no refresh token provided")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked or missing")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// Authorization errors
var (
	ErrForbidden = errors.New("forbidden")
)

// Store errors
var (
	ErrTokenRecordNotFound = errors.New("refresh token record not found")
)
