package domain

import "time"

// Roles
const (
	RoleClient     = "client"
	RoleContractor = "contractor"
)

// User statuses
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBanned   = "banned"
)

// User represents a marketplace account (client or contractor)
type User struct {
	ID         uint
	Name       string
	Phone      string
	PinHash    string
	Role       string
	Status     string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasPin reports whether a PIN has ever been set for the user
func (u *User) HasPin() bool {
	return u.PinHash != ""
}

// IsDisabled reports whether the account may no longer use issued tokens
func (u *User) IsDisabled() bool {
	return u.Status == StatusBanned || u.Status == StatusInactive
}

// View returns the sanitized projection of the user. It never carries the PIN hash.
func (u *User) View() UserView {
	return UserView{
		ID:         u.ID,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       u.Role,
		Status:     u.Status,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// UserView is the client-facing user representation
type UserView struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IsValidRole reports whether role is one of the marketplace roles
func IsValidRole(role string) bool {
	return role == RoleClient || role == RoleContractor
}

// RefreshTokenRecord is the server-side authority behind a refresh token
type RefreshTokenRecord struct {
	TokenID    string
	UserID     uint
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy string
}

// IsExpired reports whether the record is past its expiry at now
func (r *RefreshTokenRecord) IsExpired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}

// AccessClaims is the payload of a signed access token
type AccessClaims struct {
	UserID    uint
	Role      string
	Phone     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedRefreshToken is returned when a refresh token is minted
type IssuedRefreshToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// AuthResult represents a successful login or refresh
type AuthResult struct {
	User                  *User
	AccessToken           string
	AccessTokenExpiresIn  int64
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}
