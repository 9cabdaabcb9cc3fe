package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/laborhub/domain"
)

// OTPStateRepositoryImpl implements domain.OTPStateRepository using Redis
type OTPStateRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewOTPStateRepository creates a new OTP state repository
func NewOTPStateRepository(client *redis.Client) domain.OTPStateRepository {
	return &OTPStateRepositoryImpl{
		client: client,
		prefix: "otp:",
	}
}

func (r *OTPStateRepositoryImpl) resendKey(phone string) string {
	return r.prefix + "res:" + phone
}

func (r *OTPStateRepositoryImpl) attemptsKey(phone string) string {
	return r.prefix + "att:" + phone
}

// MarkSent implements domain.OTPStateRepository
func (r *OTPStateRepositoryImpl) MarkSent(ctx context.Context, phone string, window time.Duration) error {
	if err := r.client.Set(ctx, r.resendKey(phone), 1, window).Err(); err != nil {
		return fmt.Errorf("%w: set resend throttle: %v", domain.ErrServiceUnavailable, err)
	}
	return nil
}

// ResendWait implements domain.OTPStateRepository. Zero means a code may be sent now.
func (r *OTPStateRepositoryImpl) ResendWait(ctx context.Context, phone string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, r.resendKey(phone)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: check resend throttle: %v", domain.ErrServiceUnavailable, err)
	}
	// -2 (missing) and -1 (no expiry) both come back negative
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

// IncrementAttempts implements domain.OTPStateRepository. The TTL is set only
// when the counter is created so repeated failures cannot extend the window.
func (r *OTPStateRepositoryImpl) IncrementAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	key := r.attemptsKey(phone)

	attempts, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: increment otp attempts: %v", domain.ErrServiceUnavailable, err)
	}
	if attempts == 1 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: expire otp attempts: %v", domain.ErrServiceUnavailable, err)
		}
	}
	return attempts, nil
}

// ResetAttempts implements domain.OTPStateRepository
func (r *OTPStateRepositoryImpl) ResetAttempts(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, r.attemptsKey(phone)).Err(); err != nil {
		return fmt.Errorf("%w: reset otp attempts: %v", domain.ErrServiceUnavailable, err)
	}
	return nil
}
