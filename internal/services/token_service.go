package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/you/laborhub/domain"
)

// TokenServiceImpl implements domain.TokenService on top of a signer and the
// refresh token store
type TokenServiceImpl struct {
	signer       domain.TokenSigner
	refreshRepo  domain.RefreshTokenRepository
	storeTimeout time.Duration
	now          func() time.Time
	newTokenID   func() string
}

// NewTokenService creates a new token service. storeTimeout bounds every
// refresh token store call that must survive request cancellation.
func NewTokenService(signer domain.TokenSigner, refreshRepo domain.RefreshTokenRepository, storeTimeout time.Duration) *TokenServiceImpl {
	return &TokenServiceImpl{
		signer:       signer,
		refreshRepo:  refreshRepo,
		storeTimeout: storeTimeout,
		now:          time.Now,
		newTokenID:   uuid.NewString,
	}
}

// WithClock replaces the time source
func (s *TokenServiceImpl) WithClock(now func() time.Time) *TokenServiceImpl {
	s.now = now
	return s
}

// AccessTTL implements domain.TokenService
func (s *TokenServiceImpl) AccessTTL() time.Duration {
	return s.signer.AccessTTL()
}

// IssueAccessToken implements domain.TokenService
func (s *TokenServiceImpl) IssueAccessToken(user *domain.User) (string, error) {
	return s.IssueAccessTokenForClaims(domain.AccessClaims{
		UserID: user.ID,
		Role:   user.Role,
		Phone:  user.Phone,
	})
}

// IssueAccessTokenForClaims signs the given claims. A zero IssuedAt is
// stamped with the service clock; a zero ExpiresAt becomes IssuedAt plus the
// access TTL.
func (s *TokenServiceImpl) IssueAccessTokenForClaims(claims domain.AccessClaims) (string, error) {
	if claims.IssuedAt.IsZero() {
		claims.IssuedAt = s.now()
	}
	return s.signer.SignAccessToken(claims)
}

// VerifyAccessToken implements domain.TokenService
func (s *TokenServiceImpl) VerifyAccessToken(token string) (*domain.AccessClaims, error) {
	return s.signer.ParseAccessToken(token)
}

// ParseRefreshToken implements domain.TokenService
func (s *TokenServiceImpl) ParseRefreshToken(token string) (string, error) {
	return s.signer.ParseRefreshToken(token)
}

// IssueRefreshToken implements domain.TokenService
func (s *TokenServiceImpl) IssueRefreshToken(ctx context.Context, userID uint) (*domain.IssuedRefreshToken, error) {
	record, signed, err := s.mint(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.detached(ctx)
	defer cancel()

	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return &domain.IssuedRefreshToken{Token: signed, TokenID: record.TokenID, ExpiresAt: record.ExpiresAt}, nil
}

// RotateRefreshToken implements domain.TokenService. The successor is signed
// before anything is written so a signing failure leaves the old token live.
// The store write is detached from the caller's cancellation: a client that
// disconnects mid-refresh must not leave a half-applied rotation behind.
func (s *TokenServiceImpl) RotateRefreshToken(ctx context.Context, oldTokenID string, userID uint) (*domain.IssuedRefreshToken, error) {
	next, signed, err := s.mint(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.detached(ctx)
	defer cancel()

	if err := s.refreshRepo.Rotate(ctx, oldTokenID, next); err != nil {
		return nil, err
	}
	return &domain.IssuedRefreshToken{Token: signed, TokenID: next.TokenID, ExpiresAt: next.ExpiresAt}, nil
}

// RevokeRefreshToken implements domain.TokenService
func (s *TokenServiceImpl) RevokeRefreshToken(ctx context.Context, tokenID string) error {
	ctx, cancel := s.detached(ctx)
	defer cancel()

	return s.refreshRepo.Revoke(ctx, tokenID)
}

// FindRefreshTokenRecord implements domain.TokenService. A missing record is
// reported as nil without an error.
func (s *TokenServiceImpl) FindRefreshTokenRecord(ctx context.Context, tokenID string) (*domain.RefreshTokenRecord, error) {
	record, err := s.refreshRepo.FindByTokenID(ctx, tokenID)
	if errors.Is(err, domain.ErrTokenRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// PurgeExpired deletes records that expired more than retention ago
func (s *TokenServiceImpl) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	return s.refreshRepo.DeleteExpiredBefore(ctx, s.now().Add(-retention))
}

func (s *TokenServiceImpl) mint(userID uint) (*domain.RefreshTokenRecord, string, error) {
	now := s.now().UTC()
	record := &domain.RefreshTokenRecord{
		TokenID:   s.newTokenID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.signer.RefreshTTL()),
	}

	signed, err := s.signer.SignRefreshToken(record.TokenID, record.CreatedAt, record.ExpiresAt)
	if err != nil {
		return nil, "", err
	}
	return record, signed, nil
}

func (s *TokenServiceImpl) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
}

var _ domain.TokenService = (*TokenServiceImpl)(nil)
