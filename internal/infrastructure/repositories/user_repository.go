package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/laborhub/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:255;not null"`
	Phone      string    `gorm:"uniqueIndex;size:32;not null"`
	PinHash    string    `gorm:"column:pin;size:255"`
	Role       string    `gorm:"index;size:32;not null"`
	Status     string    `gorm:"index;size:32;not null;default:pending"`
	IsApproved bool      `gorm:"index;not null;default:false"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return unavailable("create user", err)
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, unavailable("find user by phone", err)
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, unavailable("find user by id", err)
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository. Only profile and state columns
// are written; the PIN goes through UpdatePin.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).Model(&DBUser{ID: user.ID}).Updates(map[string]interface{}{
		"name":        user.Name,
		"phone":       user.Phone,
		"role":        user.Role,
		"status":      user.Status,
		"is_approved": user.IsApproved,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return unavailable("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePin implements domain.UserRepository. Setting a PIN also approves the account.
func (r *UserRepositoryImpl) UpdatePin(ctx context.Context, userID uint, pinHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{ID: userID}).Updates(map[string]interface{}{
		"pin":         pinHash,
		"is_approved": true,
	})
	if res.Error != nil {
		return unavailable("update pin", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetStatusByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) SetStatusByPhone(ctx context.Context, phone, status string) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("phone = ?", phone).Update("status", status)
	if res.Error != nil {
		return nil, unavailable("set user status", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByPhone(ctx, phone)
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:         user.ID,
		Name:       user.Name,
		Phone:      user.Phone,
		PinHash:    user.PinHash,
		Role:       user.Role,
		Status:     user.Status,
		IsApproved: user.IsApproved,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:         dbUser.ID,
		Name:       dbUser.Name,
		Phone:      dbUser.Phone,
		PinHash:    dbUser.PinHash,
		Role:       dbUser.Role,
		Status:     dbUser.Status,
		IsApproved: dbUser.IsApproved,
		CreatedAt:  dbUser.CreatedAt,
		UpdatedAt:  dbUser.UpdatedAt,
	}
}

// unavailable hides a raw store failure behind domain.ErrServiceUnavailable
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrServiceUnavailable, op, err)
}
