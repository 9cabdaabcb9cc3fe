package mocks

import (
	"context"

	"github.com/you/laborhub/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	SendFunc      func(ctx context.Context, phone string) error
	VerifyFunc    func(ctx context.Context, phone, code string) (*domain.User, error)
	CanResendFunc func(ctx context.Context, phone string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Send requests a verification code for the phone
func (m *MockOTPService) Send(ctx context.Context, phone string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, phone)
	}
	return nil
}

// Verify checks the code and activates the user
func (m *MockOTPService) Verify(ctx context.Context, phone, code string) (*domain.User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code)
	}
	// Default behavior: "123456" is accepted
	if code != "123456" {
		return nil, domain.ErrOTPInvalid
	}
	return mockUser(phone, domain.RoleClient), nil
}

// CanResend checks if a new code can be sent
func (m *MockOTPService) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, phone)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
