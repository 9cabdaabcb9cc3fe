package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RefreshTokenCookie carries the refresh token between the browser and /api/auth
const RefreshTokenCookie = "refreshToken"

// CookieOptions controls how the refresh token cookie is issued
type CookieOptions struct {
	Secure bool
}

func (o CookieOptions) setRefreshToken(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (o CookieOptions) clearRefreshToken(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func refreshTokenFromCookie(c *gin.Context) string {
	token, err := c.Cookie(RefreshTokenCookie)
	if err != nil {
		return ""
	}
	return token
}
