package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/config"
	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/pkg/ratelimit"
	"github.com/servepupil/api/internal/pkg/token"
)

func RegisterRoutes(api *gin.RouterGroup, provider IdentityProvider, profilesRepo *profiles.Repository, tokens *token.Manager, cfg *config.Config, limiter *ratelimit.RateLimiter) {
	handler := NewHandler(provider, profilesRepo, tokens, cfg)

	group := api.Group("/auth")
	if limiter != nil {
		group.Use(ratelimit.Middleware(limiter))
	}
	{
		group.POST("/signup", handler.Signup)
		group.POST("/session", handler.Session)
		group.POST("/password-reset", handler.PasswordReset)
	}
}
