package domain

import "context"

// Identity is the sanitized caller attached to a request once its access token is accepted
type Identity struct {
	UserID     uint   `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	IsApproved bool   `json:"isApproved"`
}

// NewIdentity builds the identity for a loaded user
func NewIdentity(u *User) Identity {
	return Identity{
		UserID:     u.ID,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       u.Role,
		Status:     u.Status,
		IsApproved: u.IsApproved,
	}
}

type identityKey struct{}

// ContextWithIdentity returns a child context carrying id
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by the auth middleware, if any
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
