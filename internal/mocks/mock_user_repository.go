package mocks

import (
	"context"

	"github.com/you/laborhub/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.User) error
	FindByPhoneFunc      func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc           func(ctx context.Context, user *domain.User) error
	UpdatePinFunc        func(ctx context.Context, userID uint, pinHash string) error
	SetStatusByPhoneFunc func(ctx context.Context, phone, status string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// UpdatePin stores a new PIN hash
func (m *MockUserRepository) UpdatePin(ctx context.Context, userID uint, pinHash string) error {
	if m.UpdatePinFunc != nil {
		return m.UpdatePinFunc(ctx, userID, pinHash)
	}
	// Default behavior: success
	return nil
}

// SetStatusByPhone changes the account status of the user with that phone
func (m *MockUserRepository) SetStatusByPhone(ctx context.Context, phone, status string) (*domain.User, error) {
	if m.SetStatusByPhoneFunc != nil {
		return m.SetStatusByPhoneFunc(ctx, phone, status)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
