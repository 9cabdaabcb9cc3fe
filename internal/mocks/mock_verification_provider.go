package mocks

import (
	"context"

	"github.com/you/laborhub/domain"
)

// MockVerificationProvider implements domain.VerificationProvider for testing
type MockVerificationProvider struct {
	SendVerificationCodeFunc  func(ctx context.Context, phone string) error
	CheckVerificationCodeFunc func(ctx context.Context, phone, code string) (bool, error)

	SentTo []string
}

// NewMockVerificationProvider creates a new MockVerificationProvider with default behaviors
func NewMockVerificationProvider() *MockVerificationProvider {
	return &MockVerificationProvider{}
}

// SendVerificationCode records the phone
func (m *MockVerificationProvider) SendVerificationCode(ctx context.Context, phone string) error {
	if m.SendVerificationCodeFunc != nil {
		return m.SendVerificationCodeFunc(ctx, phone)
	}
	m.SentTo = append(m.SentTo, phone)
	return nil
}

// CheckVerificationCode approves "123456"
func (m *MockVerificationProvider) CheckVerificationCode(ctx context.Context, phone, code string) (bool, error) {
	if m.CheckVerificationCodeFunc != nil {
		return m.CheckVerificationCodeFunc(ctx, phone, code)
	}
	return code == "123456", nil
}

// Compile-time interface compliance verification
var _ domain.VerificationProvider = (*MockVerificationProvider)(nil)
