package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/you/laborhub/domain"
	"gorm.io/gorm"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using GORM
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the database model for a refresh token record
type DBRefreshToken struct {
	ID         uint      `gorm:"primaryKey"`
	TokenID    string    `gorm:"uniqueIndex;size:64;not null"`
	UserID     uint      `gorm:"index;not null"`
	CreatedAt  time.Time
	ExpiresAt  time.Time `gorm:"index;not null"`
	Revoked    bool      `gorm:"not null;default:false"`
	ReplacedBy string    `gorm:"size:64"`
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, record *domain.RefreshTokenRecord) error {
	if err := r.db.WithContext(ctx).Create(r.domainToDB(record)).Error; err != nil {
		return unavailable("create refresh token", err)
	}
	return nil
}

// FindByTokenID implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) FindByTokenID(ctx context.Context, tokenID string) (*domain.RefreshTokenRecord, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenRecordNotFound
		}
		return nil, unavailable("find refresh token", err)
	}
	return r.dbToDomain(&dbToken), nil
}

// Revoke implements domain.RefreshTokenRepository. Revoking an unknown or
// already revoked token is a no-op.
func (r *RefreshTokenRepositoryImpl) Revoke(ctx context.Context, tokenID string) error {
	err := r.db.WithContext(ctx).Model(&DBRefreshToken{}).
		Where("token_id = ? AND revoked = ?", tokenID, false).
		Update("revoked", true).Error
	if err != nil {
		return unavailable("revoke refresh token", err)
	}
	return nil
}

// Rotate implements domain.RefreshTokenRepository. The old record is revoked
// with a conditional update so that only one of several concurrent rotations
// of the same token can win; the loser sees zero affected rows.
func (r *RefreshTokenRepositoryImpl) Rotate(ctx context.Context, oldTokenID string, next *domain.RefreshTokenRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBRefreshToken{}).
			Where("token_id = ? AND user_id = ? AND revoked = ?", oldTokenID, next.UserID, false).
			Updates(map[string]interface{}{
				"revoked":     true,
				"replaced_by": next.TokenID,
			})
		if res.Error != nil {
			return unavailable("revoke rotated refresh token", res.Error)
		}
		if res.RowsAffected != 1 {
			return domain.ErrRefreshTokenRevoked
		}

		if err := tx.Create(r.domainToDB(next)).Error; err != nil {
			return unavailable("create rotated refresh token", err)
		}
		return nil
	})
}

// DeleteExpiredBefore implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", cutoff).Delete(&DBRefreshToken{})
	if res.Error != nil {
		return 0, unavailable("delete expired refresh tokens", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *RefreshTokenRepositoryImpl) domainToDB(record *domain.RefreshTokenRecord) *DBRefreshToken {
	return &DBRefreshToken{
		TokenID:    record.TokenID,
		UserID:     record.UserID,
		CreatedAt:  record.CreatedAt,
		ExpiresAt:  record.ExpiresAt,
		Revoked:    record.Revoked,
		ReplacedBy: record.ReplacedBy,
	}
}

func (r *RefreshTokenRepositoryImpl) dbToDomain(dbToken *DBRefreshToken) *domain.RefreshTokenRecord {
	return &domain.RefreshTokenRecord{
		TokenID:    dbToken.TokenID,
		UserID:     dbToken.UserID,
		CreatedAt:  dbToken.CreatedAt,
		ExpiresAt:  dbToken.ExpiresAt,
		Revoked:    dbToken.Revoked,
		ReplacedBy: dbToken.ReplacedBy,
	}
}
