package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/laborhub/domain"
)

// AccessTokenCookie is checked when no Authorization header is sent. The API
// never sets it: browser front ends that keep the access token in a cookie
// (non HttpOnly, set by their own script) send it under this name.
const AccessTokenCookie = "accessToken"

// AuthMW wraps the token service and user repository for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

// WithJWT returns the JWT middleware function. On success the caller's
// domain.Identity is attached to the request context.
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		}

		claims, err := mw.tokenSvc.VerifyAccessToken(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				abort(c, http.StatusUnauthorized, "token_expired", "Token expired")
			case errors.Is(err, domain.ErrTokenMalformed):
				abort(c, http.StatusUnauthorized, "token_malformed", "Invalid token payload")
			default:
				abort(c, http.StatusUnauthorized, "token_invalid", "Invalid token")
			}
			return
		}
		if claims.UserID == 0 {
			abort(c, http.StatusUnauthorized, "token_malformed", "Invalid token payload")
			return
		}

		user, err := mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				abort(c, http.StatusUnauthorized, "user_not_found", "User not found")
				return
			}
			abort(c, http.StatusServiceUnavailable, "service_unavailable", "Service temporarily unavailable")
			return
		}
		if user.IsDisabled() {
			abort(c, http.StatusForbidden, "account_disabled", "Account is disabled")
			return
		}

		ctx := domain.ContextWithIdentity(c.Request.Context(), domain.NewIdentity(user))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not role. It must run after WithJWT.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := domain.IdentityFromContext(c.Request.Context())
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		}
		if id.Role != role {
			abort(c, http.StatusForbidden, "forbidden", "Only "+role+"s are allowed to access this resource")
			return
		}
		c.Next()
	}
}

// accessToken reads a Bearer token, falling back to the access token cookie
func accessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
