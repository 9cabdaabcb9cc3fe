package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Phone verification events
	PhoneOTPRequestEvent AuditEventType = "PHONE_OTP_REQUESTED"
	PhoneOTPVerifyEvent  AuditEventType = "PHONE_OTP_VERIFIED"
	PhoneOTPFailureEvent AuditEventType = "PHONE_OTP_VERIFICATION_FAILED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	UserPinChangedEvent   AuditEventType = "USER_PIN_CHANGED"

	// Session events
	TokenRefreshEvent        AuditEventType = "TOKEN_REFRESHED"
	RefreshTokenExpiredEvent AuditEventType = "REFRESH_TOKEN_EXPIRED"
	// RefreshTokenReuseEvent marks a replay of an already rotated or revoked
	// refresh token, a likely sign the token was stolen.
	RefreshTokenReuseEvent AuditEventType = "REFRESH_TOKEN_REUSED"

	// Authorization events
	AccessDeniedEvent AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id"`
	Phone     string                 `json:"phone,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	TokenID   string                 `json:"token_id,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithTokenID sets the refresh token identifier
func (e *AuditEvent) WithTokenID(tokenID string) *AuditEvent {
	e.TokenID = tokenID
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
