package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/you/laborhub/domain"
)

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// NormalizePhone strips everything but digits and returns "+<digits>".
// Numbers must carry 10 to 15 digits.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 10 || len(digits) > 15 {
		return "", fmt.Errorf("%w: phone must be 10-15 digits", domain.ErrValidation)
	}
	return "+" + digits, nil
}

// ValidatePin checks the six digit PIN format
func ValidatePin(pin string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("%w: PIN must be exactly 6 digits", domain.ErrValidation)
	}
	return nil
}
