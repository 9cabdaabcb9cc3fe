package mocks

import (
	"context"
	"time"

	"github.com/you/laborhub/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, name, phone, role, pin string) (*domain.User, error)
	LoginFunc         func(ctx context.Context, phone, pin string) (*domain.AuthResult, error)
	RefreshFunc       func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc        func(ctx context.Context, refreshToken string)
	GetProfileFunc    func(ctx context.Context, userID uint) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, userID uint, name, phone string) (*domain.User, bool, error)
	ChangePinFunc     func(ctx context.Context, userID uint, oldPin, newPin string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func mockUser(phone, role string) *domain.User {
	return &domain.User{
		ID:         1,
		Name:       "Mock User",
		Phone:      phone,
		Role:       role,
		Status:     domain.StatusActive,
		IsApproved: true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, name, phone, role, pin string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, phone, role, pin)
	}
	// Default behavior: return a mock user
	user := mockUser(phone, role)
	user.Name = name
	return user, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, phone, pin string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, phone, pin)
	}
	// Default behavior: successful login
	return &domain.AuthResult{
		User:                  mockUser(phone, domain.RoleClient),
		AccessToken:           "mock_access_token",
		AccessTokenExpiresIn:  360,
		RefreshToken:          "mock_refresh_token",
		RefreshTokenExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	// Default behavior: rotated pair
	return &domain.AuthResult{
		User:                  mockUser("+911234567890", domain.RoleClient),
		AccessToken:           "mock_new_access_token",
		AccessTokenExpiresIn:  360,
		RefreshToken:          "mock_new_refresh_token",
		RefreshTokenExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}, nil
}

// Logout ends a session
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) {
	if m.LogoutFunc != nil {
		m.LogoutFunc(ctx, refreshToken)
	}
}

// GetProfile returns the user profile
func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	user := mockUser("+911234567890", domain.RoleClient)
	user.ID = userID
	return user, nil
}

// UpdateProfile edits name and phone
func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uint, name, phone string) (*domain.User, bool, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, name, phone)
	}
	user := mockUser(phone, domain.RoleClient)
	user.ID = userID
	user.Name = name
	return user, true, nil
}

// ChangePin sets or replaces the PIN
func (m *MockAuthService) ChangePin(ctx context.Context, userID uint, oldPin, newPin string) error {
	if m.ChangePinFunc != nil {
		return m.ChangePinFunc(ctx, userID, oldPin, newPin)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
