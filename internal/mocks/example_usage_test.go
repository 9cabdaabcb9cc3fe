package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/mocks"
)

// Shows how the mocks are meant to be combined in table-driven tests: every
// mock has a working default and a Func field to override one call.
func TestMockUsageExample(t *testing.T) {
	tests := []struct {
		name       string
		phone      string
		pin        string
		setupMocks func(*mocks.MockUserRepository, *mocks.MockPinService)
		wantErr    error
	}{
		{
			name:  "known user with matching pin",
			phone: "+919999999999",
			pin:   "445566",
			setupMocks: func(users *mocks.MockUserRepository, _ *mocks.MockPinService) {
				users.FindByPhoneFunc = func(_ context.Context, phone string) (*domain.User, error) {
					return &domain.User{ID: 1, Phone: phone, PinHash: "hashed_445566", Role: domain.RoleClient, Status: domain.StatusActive}, nil
				}
			},
		},
		{
			name:    "unknown user",
			phone:   "+918888888888",
			pin:     "445566",
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:  "pin rejected",
			phone: "+919999999999",
			pin:   "445566",
			setupMocks: func(users *mocks.MockUserRepository, pins *mocks.MockPinService) {
				users.FindByPhoneFunc = func(_ context.Context, phone string) (*domain.User, error) {
					return &domain.User{ID: 1, Phone: phone, PinHash: "hashed_445566"}, nil
				}
				pins.VerifyFunc = func(string, string) bool { return false }
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mocks.NewMockUserRepository()
			pins := mocks.NewMockPinService()
			if tt.setupMocks != nil {
				tt.setupMocks(users, pins)
			}

			err := checkPin(context.Background(), users, pins, tt.phone, tt.pin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func checkPin(ctx context.Context, users domain.UserRepository, pins domain.PinService, phone, pin string) error {
	user, err := users.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if !pins.Verify(user.PinHash, pin) {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func TestMockDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("pin service hashes reversibly", func(t *testing.T) {
		pins := mocks.NewMockPinService()
		hash, err := pins.Hash("123456")
		require.NoError(t, err)
		assert.True(t, pins.Verify(hash, "123456"))
		assert.False(t, pins.Verify(hash, "654321"))
		assert.False(t, pins.Verify("", ""))
	})

	t.Run("token service rejects unknown tokens", func(t *testing.T) {
		tokens := mocks.NewMockTokenService()
		_, err := tokens.VerifyAccessToken("anything")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		_, err = tokens.ParseRefreshToken("anything")
		assert.ErrorIs(t, err, domain.ErrRefreshTokenInvalid)

		issued, err := tokens.IssueRefreshToken(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "tok_7", issued.TokenID)
	})

	t.Run("otp service accepts the stub code", func(t *testing.T) {
		otp := mocks.NewMockOTPService()
		user, err := otp.Verify(ctx, "+919999999999", "123456")
		require.NoError(t, err)
		assert.Equal(t, "+919999999999", user.Phone)

		_, err = otp.Verify(ctx, "+919999999999", "000000")
		assert.ErrorIs(t, err, domain.ErrOTPInvalid)
	})

	t.Run("enforcer matches route wildcards", func(t *testing.T) {
		e := mocks.NewMockCasbinEnforcer()
		ok, err := e.Enforce(domain.RoleClient, "/api/client/whoami", "GET")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, _ = e.Enforce(domain.RoleClient, "/api/contractor/whoami", "GET")
		assert.False(t, ok)

		added, _ := e.AddPolicy(domain.RoleClient, "/api/contractor/*", "GET")
		assert.True(t, added)
		ok, _ = e.Enforce(domain.RoleClient, "/api/contractor/whoami", "GET")
		assert.True(t, ok)
	})

	t.Run("overrides replace the default", func(t *testing.T) {
		users := mocks.NewMockUserRepository()
		boom := errors.New("boom")
		users.FindByIDFunc = func(context.Context, uint) (*domain.User, error) { return nil, boom }

		_, err := users.FindByID(ctx, 1)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("audit logger filters by type", func(t *testing.T) {
		audit := mocks.NewMockAuditLogger()
		audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, 1))
		audit.LogEvent(ctx, domain.NewAuditEvent(domain.AccessDeniedEvent, 1))

		assert.Len(t, audit.Events(domain.UserLoginEvent), 1)
		assert.Len(t, audit.Events(domain.UserLogoutEvent), 0)
	})
}
