package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/you/laborhub/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes are generated and
// checked by the verification provider; Redis only throttles sends and counts
// failed checks.
type OTPServiceImpl struct {
	provider domain.VerificationProvider
	userRepo domain.UserRepository
	state    domain.OTPStateRepository
	audit    domain.AuditLogger
	config   OTPConfig
}

type OTPConfig struct {
	MaxAttempts  int
	AttemptTTL   time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(provider domain.VerificationProvider, userRepo domain.UserRepository, state domain.OTPStateRepository, audit domain.AuditLogger, config OTPConfig) *OTPServiceImpl {
	return &OTPServiceImpl{
		provider: provider,
		userRepo: userRepo,
		state:    state,
		audit:    audit,
		config:   config,
	}
}

// Send implements domain.OTPService
func (s *OTPServiceImpl) Send(ctx context.Context, phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	canResend, wait, err := s.CanResend(ctx, normalized)
	if err != nil {
		return err
	}
	if !canResend {
		return fmt.Errorf("%w: please wait %d seconds before requesting a new code", domain.ErrOTPResendLimit, wait)
	}

	if err := s.provider.SendVerificationCode(ctx, normalized); err != nil {
		return err
	}
	if err := s.state.MarkSent(ctx, normalized, s.config.ResendWindow); err != nil {
		return err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPRequestEvent, 0).WithPhone(normalized))
	return nil
}

// Verify implements domain.OTPService. An approved code activates the user
// owning the phone.
func (s *OTPServiceImpl) Verify(ctx context.Context, phone, code string) (*domain.User, error) {
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: phone and code are required", domain.ErrValidation)
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	attempts, err := s.state.IncrementAttempts(ctx, normalized, s.config.AttemptTTL)
	if err != nil {
		return nil, err
	}
	if attempts > int64(s.config.MaxAttempts) {
		s.verifyFailed(ctx, normalized, domain.ErrOTPMaxAttempts)
		return nil, domain.ErrOTPMaxAttempts
	}

	approved, err := s.provider.CheckVerificationCode(ctx, normalized, code)
	if err != nil {
		return nil, err
	}
	if !approved {
		s.verifyFailed(ctx, normalized, domain.ErrOTPInvalid)
		return nil, domain.ErrOTPInvalid
	}

	if err := s.state.ResetAttempts(ctx, normalized); err != nil {
		return nil, err
	}

	user, err := s.userRepo.SetStatusByPhone(ctx, normalized, domain.StatusActive)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPVerifyEvent, user.ID).WithPhone(normalized))
	return user, nil
}

// CanResend implements domain.OTPService
func (s *OTPServiceImpl) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	wait, err := s.state.ResendWait(ctx, phone)
	if err != nil {
		return false, 0, err
	}
	if wait <= 0 {
		return true, 0, nil
	}
	return false, int64(wait.Round(time.Second).Seconds()), nil
}

func (s *OTPServiceImpl) verifyFailed(ctx context.Context, phone string, err error) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPFailureEvent, 0).WithPhone(phone).WithError(err))
}

var _ domain.OTPService = (*OTPServiceImpl)(nil)
