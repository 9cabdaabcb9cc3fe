package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/you/laborhub/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueAccessTokenFunc       func(user *domain.User) (string, error)
	VerifyAccessTokenFunc      func(token string) (*domain.AccessClaims, error)
	IssueRefreshTokenFunc      func(ctx context.Context, userID uint) (*domain.IssuedRefreshToken, error)
	RotateRefreshTokenFunc     func(ctx context.Context, oldTokenID string, userID uint) (*domain.IssuedRefreshToken, error)
	RevokeRefreshTokenFunc     func(ctx context.Context, tokenID string) error
	FindRefreshTokenRecordFunc func(ctx context.Context, tokenID string) (*domain.RefreshTokenRecord, error)
	ParseRefreshTokenFunc      func(token string) (string, error)
	AccessTTLFunc              func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssueAccessToken signs an access token for the user
func (m *MockTokenService) IssueAccessToken(user *domain.User) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(user)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_user_%d_%s", user.ID, user.Role), nil
}

// VerifyAccessToken checks an access token
func (m *MockTokenService) VerifyAccessToken(token string) (*domain.AccessClaims, error) {
	if m.VerifyAccessTokenFunc != nil {
		return m.VerifyAccessTokenFunc(token)
	}
	// Default behavior: invalid token
	return nil, domain.ErrTokenInvalid
}

// IssueRefreshToken creates a refresh token for the user
func (m *MockTokenService) IssueRefreshToken(ctx context.Context, userID uint) (*domain.IssuedRefreshToken, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(ctx, userID)
	}
	// Default behavior: return a mock refresh token
	return &domain.IssuedRefreshToken{
		Token:     fmt.Sprintf("refresh_token_user_%d", userID),
		TokenID:   fmt.Sprintf("tok_%d", userID),
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}, nil
}

// RotateRefreshToken replaces a refresh token with a new one
func (m *MockTokenService) RotateRefreshToken(ctx context.Context, oldTokenID string, userID uint) (*domain.IssuedRefreshToken, error) {
	if m.RotateRefreshTokenFunc != nil {
		return m.RotateRefreshTokenFunc(ctx, oldTokenID, userID)
	}
	// Default behavior: return a rotated mock token
	return &domain.IssuedRefreshToken{
		Token:     "rotated_" + oldTokenID,
		TokenID:   oldTokenID + "_next",
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}, nil
}

// RevokeRefreshToken revokes a refresh token
func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenID string) error {
	if m.RevokeRefreshTokenFunc != nil {
		return m.RevokeRefreshTokenFunc(ctx, tokenID)
	}
	return nil
}

// FindRefreshTokenRecord looks a record up
func (m *MockTokenService) FindRefreshTokenRecord(ctx context.Context, tokenID string) (*domain.RefreshTokenRecord, error) {
	if m.FindRefreshTokenRecordFunc != nil {
		return m.FindRefreshTokenRecordFunc(ctx, tokenID)
	}
	// Default behavior: absent
	return nil, nil
}

// ParseRefreshToken extracts the token identifier
func (m *MockTokenService) ParseRefreshToken(token string) (string, error) {
	if m.ParseRefreshTokenFunc != nil {
		return m.ParseRefreshTokenFunc(token)
	}
	// Default behavior: invalid token
	return "", domain.ErrRefreshTokenInvalid
}

// AccessTTL returns the access token lifetime
func (m *MockTokenService) AccessTTL() time.Duration {
	if m.AccessTTLFunc != nil {
		return m.AccessTTLFunc()
	}
	return 6 * time.Minute
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
