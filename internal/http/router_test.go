package httpx

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/http/handlers"
	"github.com/you/laborhub/internal/http/middleware"
	"github.com/you/laborhub/internal/mocks"
)

func testRouter(authSvc domain.AuthService, logs *bytes.Buffer) *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	h := Handlers{
		Auth: handlers.NewAuthHandlers(authSvc, handlers.CookieOptions{}),
		User: handlers.NewUserHandlers(authSvc),
		OTP:  handlers.NewOTPHandlers(mocks.NewMockOTPService()),
	}
	jwtMW := middleware.NewAuthMW(mocks.NewMockTokenService(), mocks.NewMockUserRepository())
	casbinMW := middleware.NewCasbinMW(mocks.NewMockPolicyService(), mocks.NewMockAuditLogger())
	return BuildRouter(logger, h, jwtMW, casbinMW)
}

func TestBuildRouter_LogsServerErrorCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"unmapped error", errors.New("pq: could not serialize access SECRETDETAIL"), http.StatusInternalServerError},
		{"store outage", domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginFunc = func(context.Context, string, string) (*domain.AuthResult, error) {
				return nil, tt.err
			}
			var logs bytes.Buffer
			router := testRouter(authSvc, &logs)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"phone":"+911234567890","pin":"445566"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotContains(t, w.Body.String(), tt.err.Error())
			assert.Contains(t, logs.String(), `"level":"ERROR"`)
			assert.Contains(t, logs.String(), tt.err.Error())
		})
	}
}

func TestBuildRouter_ClientErrorsLogWithoutCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authSvc := mocks.NewMockAuthService()
	authSvc.LoginFunc = func(context.Context, string, string) (*domain.AuthResult, error) {
		return nil, domain.ErrInvalidCredentials
	}
	var logs bytes.Buffer
	router := testRouter(authSvc, &logs)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"phone":"+911234567890","pin":"000000"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, logs.String(), `"status":401`)
	assert.NotContains(t, logs.String(), `"errors"`)
}
