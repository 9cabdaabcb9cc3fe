package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/laborhub/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing.
// Without overrides it behaves like a small in-memory store.
type MockRefreshTokenRepository struct {
	CreateFunc              func(ctx context.Context, record *domain.RefreshTokenRecord) error
	FindByTokenIDFunc       func(ctx context.Context, tokenID string) (*domain.RefreshTokenRecord, error)
	RevokeFunc              func(ctx context.Context, tokenID string) error
	RotateFunc              func(ctx context.Context, oldTokenID string, next *domain.RefreshTokenRecord) error
	DeleteExpiredBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

	mu      sync.Mutex
	records map[string]domain.RefreshTokenRecord
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{records: make(map[string]domain.RefreshTokenRecord)}
}

// Create stores a record
func (m *MockRefreshTokenRepository) Create(ctx context.Context, record *domain.RefreshTokenRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.TokenID] = *record
	return nil
}

// FindByTokenID looks a record up
func (m *MockRefreshTokenRepository) FindByTokenID(ctx context.Context, tokenID string) (*domain.RefreshTokenRecord, error) {
	if m.FindByTokenIDFunc != nil {
		return m.FindByTokenIDFunc(ctx, tokenID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[tokenID]
	if !ok {
		return nil, domain.ErrTokenRecordNotFound
	}
	return &record, nil
}

// Revoke marks a record revoked
func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[tokenID]; ok {
		record.Revoked = true
		m.records[tokenID] = record
	}
	return nil
}

// Rotate revokes the old record and stores its successor under one lock
func (m *MockRefreshTokenRepository) Rotate(ctx context.Context, oldTokenID string, next *domain.RefreshTokenRecord) error {
	if m.RotateFunc != nil {
		return m.RotateFunc(ctx, oldTokenID, next)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.records[oldTokenID]
	if !ok || old.Revoked || old.UserID != next.UserID {
		return domain.ErrRefreshTokenRevoked
	}
	old.Revoked = true
	old.ReplacedBy = next.TokenID
	m.records[oldTokenID] = old
	m.records[next.TokenID] = *next
	return nil
}

// DeleteExpiredBefore drops records that expired before cutoff
func (m *MockRefreshTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteExpiredBeforeFunc != nil {
		return m.DeleteExpiredBeforeFunc(ctx, cutoff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, record := range m.records {
		if record.ExpiresAt.Before(cutoff) {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)
