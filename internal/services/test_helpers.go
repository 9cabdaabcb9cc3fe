package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/infrastructure/auth"
	"github.com/you/laborhub/internal/mocks"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
	testIssuer        = "laborhub-test"
)

// authFixture holds an AuthService built on a real JWT signer and an
// in-memory refresh token store, with every other collaborator mocked
type authFixture struct {
	svc         *AuthServiceImpl
	tokens      *TokenServiceImpl
	signer      *auth.JWTServiceImpl
	userRepo    *mocks.MockUserRepository
	refreshRepo *mocks.MockRefreshTokenRepository
	pinSvc      *mocks.MockPinService
	audit       *mocks.MockAuditLogger
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSigner() *auth.JWTServiceImpl {
	return auth.NewJWTService(testAccessSecret, testRefreshSecret, testIssuer, 6*time.Minute, 30*24*time.Hour)
}

// createAuthServiceForTest creates an AuthService with test dependencies
func createAuthServiceForTest(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		signer:      newTestSigner(),
		userRepo:    mocks.NewMockUserRepository(),
		refreshRepo: mocks.NewMockRefreshTokenRepository(),
		pinSvc:      mocks.NewMockPinService(),
		audit:       mocks.NewMockAuditLogger(),
	}
	f.tokens = NewTokenService(f.signer, f.refreshRepo, time.Second)
	f.svc = NewAuthService(f.userRepo, f.pinSvc, f.tokens, f.audit, discardLogger())
	return f
}

// withUsers makes the mock user repository serve the given users
func (f *authFixture) withUsers(users ...*domain.User) {
	find := func(match func(u *domain.User) bool) (*domain.User, error) {
		for _, u := range users {
			if match(u) {
				copied := *u
				return &copied, nil
			}
		}
		return nil, domain.ErrUserNotFound
	}
	f.userRepo.FindByPhoneFunc = func(_ context.Context, phone string) (*domain.User, error) {
		return find(func(u *domain.User) bool { return u.Phone == phone })
	}
	f.userRepo.FindByIDFunc = func(_ context.Context, id uint) (*domain.User, error) {
		return find(func(u *domain.User) bool { return u.ID == id })
	}
}

// createValidUser creates an approved client with PIN 445566
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:         1,
		Name:       "Asha",
		Phone:      "+911234567890",
		PinHash:    "hashed_445566",
		Role:       domain.RoleClient,
		Status:     domain.StatusActive,
		IsApproved: true,
		CreatedAt:  time.Now().Add(-24 * time.Hour),
		UpdatedAt:  time.Now().Add(-time.Hour),
	}
}

// createUnapprovedUser creates a user whose account is not yet approved
func createUnapprovedUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = 2
	user.Phone = "+912222222222"
	user.IsApproved = false
	return user
}

// createContractorUser creates an approved contractor
func createContractorUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = 3
	user.Name = "Ravi"
	user.Phone = "+913333333333"
	user.Role = domain.RoleContractor
	return user
}
