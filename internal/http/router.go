package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/http/handlers"
	"github.com/you/laborhub/internal/http/middleware"
)

// Handlers groups the endpoint handlers mounted by BuildRouter
type Handlers struct {
	Auth *handlers.AuthHandlers
	User *handlers.UserHandlers
	OTP  *handlers.OTPHandlers
}

func BuildRouter(logger *slog.Logger, h Handlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	otp := api.Group("/otp")
	otp.POST("/send", h.OTP.Send)
	otp.POST("/verify", h.OTP.Verify)

	user := api.Group("/user")
	user.POST("/register", h.User.Register)

	profile := user.Group("/profile", jwtmw.WithJWT())
	profile.GET("", h.User.Profile)
	profile.PUT("/update", h.User.UpdateProfile)
	profile.POST("/update/pin", h.User.ChangePin)

	client := api.Group("/client", jwtmw.WithJWT(), middleware.RequireRole(domain.RoleClient), cb.Enforce())
	client.GET("/whoami", h.User.WhoAmI)

	contractor := api.Group("/contractor", jwtmw.WithJWT(), middleware.RequireRole(domain.RoleContractor), cb.Enforce())
	contractor.GET("/whoami", h.User.WhoAmI)

	return r
}
