package mocks

import (
	"context"
	"time"

	"github.com/you/laborhub/domain"
)

// MockOTPStateRepository implements domain.OTPStateRepository for testing
type MockOTPStateRepository struct {
	MarkSentFunc          func(ctx context.Context, phone string, window time.Duration) error
	ResendWaitFunc        func(ctx context.Context, phone string) (time.Duration, error)
	IncrementAttemptsFunc func(ctx context.Context, phone string, ttl time.Duration) (int64, error)
	ResetAttemptsFunc     func(ctx context.Context, phone string) error
}

// NewMockOTPStateRepository creates a new MockOTPStateRepository with default behaviors
func NewMockOTPStateRepository() *MockOTPStateRepository {
	return &MockOTPStateRepository{}
}

// MarkSent starts the resend window
func (m *MockOTPStateRepository) MarkSent(ctx context.Context, phone string, window time.Duration) error {
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, phone, window)
	}
	return nil
}

// ResendWait reports how long until another code may be sent
func (m *MockOTPStateRepository) ResendWait(ctx context.Context, phone string) (time.Duration, error) {
	if m.ResendWaitFunc != nil {
		return m.ResendWaitFunc(ctx, phone)
	}
	// Default behavior: no throttle
	return 0, nil
}

// IncrementAttempts bumps the verification attempt counter
func (m *MockOTPStateRepository) IncrementAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, phone, ttl)
	}
	// Default behavior: first attempt
	return 1, nil
}

// ResetAttempts clears the attempt counter
func (m *MockOTPStateRepository) ResetAttempts(ctx context.Context, phone string) error {
	if m.ResetAttemptsFunc != nil {
		return m.ResetAttemptsFunc(ctx, phone)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPStateRepository = (*MockOTPStateRepository)(nil)
