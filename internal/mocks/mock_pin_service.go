package mocks

import (
	"strings"

	"github.com/you/laborhub/domain"
)

// MockPinService implements domain.PinService interface for testing
type MockPinService struct {
	HashFunc   func(pin string) (string, error)
	VerifyFunc func(hashedPin, pin string) bool
}

// NewMockPinService creates a new MockPinService with default behaviors
func NewMockPinService() *MockPinService {
	return &MockPinService{}
}

// Hash hashes a PIN
func (m *MockPinService) Hash(pin string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(pin)
	}
	// Default behavior: prefix the PIN
	return "hashed_" + pin, nil
}

// Verify compares a PIN with a hash produced by Hash
func (m *MockPinService) Verify(hashedPin, pin string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPin, pin)
	}
	// Default behavior: check against the Hash format
	return hashedPin != "" && strings.TrimPrefix(hashedPin, "hashed_") == pin
}

// Compile-time interface compliance verification
var _ domain.PinService = (*MockPinService)(nil)
