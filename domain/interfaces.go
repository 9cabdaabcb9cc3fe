package domain

import (
	"context"
	"time"
)

// UserRepository defines credential store operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePin(ctx context.Context, userID uint, pinHash string) error
	SetStatusByPhone(ctx context.Context, phone, status string) (*User, error)
}

// RefreshTokenRepository defines refresh token store operations.
// Rotate must be atomic: the old record is revoked only if it is still live,
// and the successor is inserted in the same transaction.
type RefreshTokenRepository interface {
	Create(ctx context.Context, record *RefreshTokenRecord) error
	FindByTokenID(ctx context.Context, tokenID string) (*RefreshTokenRecord, error)
	Revoke(ctx context.Context, tokenID string) error
	Rotate(ctx context.Context, oldTokenID string, next *RefreshTokenRecord) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// OTPStateRepository keeps the short-lived counters that throttle OTP sends
// and bound verification attempts per phone
type OTPStateRepository interface {
	MarkSent(ctx context.Context, phone string, window time.Duration) error
	ResendWait(ctx context.Context, phone string) (time.Duration, error)
	IncrementAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error)
	ResetAttempts(ctx context.Context, phone string) error
}

// PinService defines PIN hashing operations
type PinService interface {
	Hash(pin string) (string, error)
	Verify(hashedPin, pin string) bool
}

// TokenSigner encodes and decodes signed tokens. It holds no state besides its keys.
type TokenSigner interface {
	SignAccessToken(claims AccessClaims) (string, error)
	ParseAccessToken(token string) (*AccessClaims, error)
	SignRefreshToken(tokenID string, issuedAt, expiresAt time.Time) (string, error)
	ParseRefreshToken(token string) (string, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// TokenService is the sole authority for minting, verifying and invalidating tokens
type TokenService interface {
	IssueAccessToken(user *User) (string, error)
	VerifyAccessToken(token string) (*AccessClaims, error)
	IssueRefreshToken(ctx context.Context, userID uint) (*IssuedRefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldTokenID string, userID uint) (*IssuedRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenID string) error
	FindRefreshTokenRecord(ctx context.Context, tokenID string) (*RefreshTokenRecord, error)
	ParseRefreshToken(token string) (string, error)
	AccessTTL() time.Duration
}

// AuthService defines the auth gateway business logic
type AuthService interface {
	Register(ctx context.Context, name, phone, role, pin string) (*User, error)
	Login(ctx context.Context, phone, pin string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string)
	GetProfile(ctx context.Context, userID uint) (*User, error)
	UpdateProfile(ctx context.Context, userID uint, name, phone string) (*User, bool, error)
	ChangePin(ctx context.Context, userID uint, oldPin, newPin string) error
}

// VerificationProvider is the external one-time-code collaborator
type VerificationProvider interface {
	SendVerificationCode(ctx context.Context, phone string) error
	CheckVerificationCode(ctx context.Context, phone, code string) (bool, error)
}

// OTPService defines OTP operations
type OTPService interface {
	Send(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) (*User, error)
	CanResend(ctx context.Context, phone string) (bool, int64, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
	EnsurePolicies(policies [][]string) error
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
