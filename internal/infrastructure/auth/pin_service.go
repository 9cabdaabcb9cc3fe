package auth

import (
	"github.com/you/laborhub/domain"
	"golang.org/x/crypto/bcrypt"
)

// PinServiceImpl implements domain.PinService
type PinServiceImpl struct {
	cost int
}

// NewPinService creates a new PIN service
func NewPinService() domain.PinService {
	return &PinServiceImpl{
		cost: bcrypt.DefaultCost,
	}
}

// NewPinServiceWithCost creates a PIN service with a custom bcrypt cost (tests use bcrypt.MinCost)
func NewPinServiceWithCost(cost int) domain.PinService {
	return &PinServiceImpl{cost: cost}
}

// Hash implements domain.PinService
func (p *PinServiceImpl) Hash(pin string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(pin), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PinService. bcrypt compares in constant time; an
// empty hash (PIN never set) never matches.
func (p *PinServiceImpl) Verify(hashedPin, pin string) bool {
	if hashedPin == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedPin), []byte(pin))
	return err == nil
}
