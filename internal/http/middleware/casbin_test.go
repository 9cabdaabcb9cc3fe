package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/infrastructure/auth"
	"github.com/you/laborhub/internal/mocks"
	"github.com/you/laborhub/internal/services"
)

// routePolicyService builds a real casbin-backed policy service holding the route policies
func routePolicyService(t *testing.T) domain.PolicyService {
	t.Helper()

	cs, err := auth.NewMemoryCasbinService()
	require.NoError(t, err)

	policies := services.NewPolicyService(cs.E)
	require.NoError(t, policies.EnsurePolicies(services.RoutePolicies()))
	return policies
}

func TestCasbinMW_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		role           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "client whoami", role: domain.RoleClient, method: http.MethodGet, path: "/api/client/whoami", expectedStatus: http.StatusOK},
		{name: "contractor whoami", role: domain.RoleContractor, method: http.MethodGet, path: "/api/contractor/whoami", expectedStatus: http.StatusOK},
		{name: "client on contractor path", role: domain.RoleClient, method: http.MethodGet, path: "/api/contractor/whoami", expectedStatus: http.StatusForbidden},
		{name: "contractor on client path", role: domain.RoleContractor, method: http.MethodGet, path: "/api/client/whoami", expectedStatus: http.StatusForbidden},
		{name: "method without policy", role: domain.RoleClient, method: http.MethodDelete, path: "/api/client/whoami", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := mocks.NewMockAuditLogger()
			mw := NewCasbinMW(routePolicyService(t), audit)

			router := gin.New()
			router.Use(func(c *gin.Context) {
				id := domain.Identity{UserID: 9, Role: tt.role}
				c.Request = c.Request.WithContext(domain.ContextWithIdentity(c.Request.Context(), id))
			}, mw.Enforce())
			router.Handle(tt.method, tt.path, func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			denials := audit.Events(domain.AccessDeniedEvent)
			if tt.expectedStatus == http.StatusForbidden {
				require.Len(t, denials, 1)
				assert.Equal(t, uint(9), denials[0].UserID)
				assert.Equal(t, tt.path, denials[0].Metadata["path"])
			} else {
				assert.Empty(t, denials)
			}
		})
	}
}

func TestCasbinMW_EnforcerFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	policies := mocks.NewMockPolicyService()
	policies.CheckPermissionFunc = func(role, resource, action string) (bool, error) {
		return false, errors.New("matcher failed")
	}
	mw := NewCasbinMW(policies, mocks.NewMockAuditLogger())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		id := domain.Identity{UserID: 1, Role: domain.RoleClient}
		c.Request = c.Request.WithContext(domain.ContextWithIdentity(c.Request.Context(), id))
	}, mw.Enforce())
	router.GET("/api/client/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/client/whoami", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCasbinMW_RequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mw := NewCasbinMW(mocks.NewMockPolicyService(), mocks.NewMockAuditLogger())
	router := gin.New()
	router.GET("/api/client/whoami", mw.Enforce(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/client/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	router := gin.New()
	router.Use(Recovery(logger), RequestLogger(logger))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", decodeBody(t, w)["code"])
	assert.Contains(t, logs.String(), "panic_recovered")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, logs.String(), `"path":"/ok"`)
}
