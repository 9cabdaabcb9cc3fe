package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/laborhub/domain"
)

// CasbinMW checks the caller's role against the route policies
type CasbinMW struct {
	policies domain.PolicyService
	audit    domain.AuditLogger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policies domain.PolicyService, audit domain.AuditLogger) *CasbinMW {
	return &CasbinMW{policies: policies, audit: audit}
}

// Enforce returns the casbin authorization middleware. It must run after WithJWT.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := domain.IdentityFromContext(c.Request.Context())
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.policies.CheckPermission(id.Role, path, method)
		if err != nil {
			abort(c, http.StatusInternalServerError, "internal_error", "Authorization check failed")
			return
		}

		if !allowed {
			mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, id.UserID).
				WithError(domain.ErrForbidden).
				WithMetadata("role", id.Role).
				WithMetadata("path", path).
				WithMetadata("method", method))
			abort(c, http.StatusForbidden, "forbidden", "Access Denied")
			return
		}

		c.Next()
	}
}
