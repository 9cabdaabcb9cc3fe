package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/you/laborhub/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo domain.UserRepository
	pinSvc   domain.PinService
	tokenSvc domain.TokenService
	audit    domain.AuditLogger
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	pinSvc domain.PinService,
	tokenSvc domain.TokenService,
	audit domain.AuditLogger,
	logger *slog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		pinSvc:   pinSvc,
		tokenSvc: tokenSvc,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source
func (s *AuthServiceImpl) WithClock(now func() time.Time) *AuthServiceImpl {
	s.now = now
	return s
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, name, phone, role, pin string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("%w: name and phone are required", domain.ErrValidation)
	}
	if pin == "" {
		return nil, fmt.Errorf("%w: PIN is required", domain.ErrValidation)
	}
	if !domain.IsValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role", domain.ErrValidation)
	}
	if err := ValidatePin(pin); err != nil {
		return nil, err
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.FindByPhone(ctx, normalized)
	if err == nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.pinSvc.Hash(pin)
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	user := &domain.User{
		Name:       name,
		Phone:      normalized,
		PinHash:    hashed,
		Role:       role,
		Status:     domain.StatusActive,
		IsApproved: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithPhone(user.Phone).
		WithMetadata("role", user.Role))
	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, phone, pin string) (*domain.AuthResult, error) {
	if strings.TrimSpace(phone) == "" || pin == "" {
		return nil, fmt.Errorf("%w: phone and PIN are required", domain.ErrValidation)
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, 0, normalized, err)
		}
		return nil, err
	}

	if !user.IsApproved {
		s.loginFailed(ctx, user.ID, normalized, domain.ErrNotApproved)
		return nil, domain.ErrNotApproved
	}

	// bcrypt compares in constant time; an unset PIN never matches
	if !s.pinSvc.Verify(user.PinHash, pin) {
		s.loginFailed(ctx, user.ID, normalized, domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	if user.IsDisabled() {
		s.loginFailed(ctx, user.ID, normalized, domain.ErrAccountDisabled)
		return nil, domain.ErrAccountDisabled
	}

	result, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).
		WithPhone(user.Phone).
		WithTokenID(result.refreshTokenID))
	return result.AuthResult, nil
}

// Refresh implements domain.AuthService
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingRefreshToken
	}

	tokenID, err := s.tokenSvc.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	record, err := s.tokenSvc.FindRefreshTokenRecord(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRefreshTokenRevoked
	}
	if record.Revoked {
		s.reuseDetected(ctx, record.UserID, tokenID)
		return nil, domain.ErrRefreshTokenRevoked
	}

	if record.IsExpired(s.now()) {
		if err := s.tokenSvc.RevokeRefreshToken(ctx, tokenID); err != nil {
			s.logger.WarnContext(ctx, "failed to revoke expired refresh token", "token_id", tokenID, "error", err)
		}
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.RefreshTokenExpiredEvent, record.UserID).
			WithTokenID(tokenID).
			WithError(domain.ErrRefreshTokenExpired))
		return nil, domain.ErrRefreshTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsDisabled() {
		return nil, domain.ErrAccountDisabled
	}

	// signed before rotating so a signing failure leaves the presented token live
	accessToken, err := s.tokenSvc.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	rotated, err := s.tokenSvc.RotateRefreshToken(ctx, tokenID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenRevoked) {
			// another request rotated this token first
			s.reuseDetected(ctx, user.ID, tokenID)
		}
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, user.ID).
		WithTokenID(rotated.TokenID).
		WithMetadata("replaces", tokenID))

	return &domain.AuthResult{
		User:                  user,
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  int64(s.tokenSvc.AccessTTL().Seconds()),
		RefreshToken:          rotated.Token,
		RefreshTokenExpiresAt: rotated.ExpiresAt,
	}, nil
}

// Logout implements domain.AuthService. Revocation is best effort: logout
// succeeds for the caller whether or not a live token was presented.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	tokenID, err := s.tokenSvc.ParseRefreshToken(refreshToken)
	if err != nil {
		return
	}

	_ = s.tokenSvc.RevokeRefreshToken(ctx, tokenID)

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, 0).WithTokenID(tokenID))
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile implements domain.AuthService. The boolean reports whether
// anything actually changed.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID uint, name, phone string) (*domain.User, bool, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" && phone == "" {
		return nil, false, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	updated := false
	if name != "" && name != user.Name {
		user.Name = name
		updated = true
	}

	if phone != "" {
		normalized, err := NormalizePhone(phone)
		if err != nil {
			return nil, false, err
		}
		if normalized != user.Phone {
			existing, err := s.userRepo.FindByPhone(ctx, normalized)
			switch {
			case err == nil && existing.ID != user.ID:
				return nil, false, domain.ErrUserAlreadyExists
			case err != nil && !errors.Is(err, domain.ErrUserNotFound):
				return nil, false, err
			}
			user.Phone = normalized
			updated = true
		}
	}

	if !updated {
		return user, false, nil
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// ChangePin implements domain.AuthService. When a PIN is already set the
// current one is required; setting a PIN approves the account.
func (s *AuthServiceImpl) ChangePin(ctx context.Context, userID uint, oldPin, newPin string) error {
	if err := ValidatePin(newPin); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.HasPin() {
		if oldPin == "" {
			return fmt.Errorf("%w: current PIN is required", domain.ErrValidation)
		}
		if !s.pinSvc.Verify(user.PinHash, oldPin) {
			return domain.ErrInvalidCredentials
		}
	}

	hashed, err := s.pinSvc.Hash(newPin)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}
	if err := s.userRepo.UpdatePin(ctx, user.ID, hashed); err != nil {
		return err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserPinChangedEvent, user.ID))
	return nil
}

type issuedPair struct {
	*domain.AuthResult
	refreshTokenID string
}

func (s *AuthServiceImpl) issuePair(ctx context.Context, user *domain.User) (*issuedPair, error) {
	accessToken, err := s.tokenSvc.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokenSvc.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &issuedPair{
		AuthResult: &domain.AuthResult{
			User:                  user,
			AccessToken:           accessToken,
			AccessTokenExpiresIn:  int64(s.tokenSvc.AccessTTL().Seconds()),
			RefreshToken:          refresh.Token,
			RefreshTokenExpiresAt: refresh.ExpiresAt,
		},
		refreshTokenID: refresh.TokenID,
	}, nil
}

func (s *AuthServiceImpl) loginFailed(ctx context.Context, userID uint, phone string, err error) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, userID).
		WithPhone(phone).
		WithError(err))
}

func (s *AuthServiceImpl) reuseDetected(ctx context.Context, userID uint, tokenID string) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.RefreshTokenReuseEvent, userID).
		WithTokenID(tokenID).
		WithError(domain.ErrRefreshTokenRevoked))
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
