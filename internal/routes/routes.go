package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/config"
	"github.com/servepupil/api/internal/features/auth"
	"github.com/servepupil/api/internal/features/comments"
	"github.com/servepupil/api/internal/features/feed"
	"github.com/servepupil/api/internal/features/follows"
	"github.com/servepupil/api/internal/features/likes"
	"github.com/servepupil/api/internal/features/moderation"
	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/features/reports"
	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/objectstore"
	"github.com/servepupil/api/internal/pkg/ratelimit"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
)

// SetupRoutes wires every feature onto the /api/v1 group. The tree
// store and object store are shared; repositories that more than one
// feature consumes are constructed once here.
func SetupRoutes(router *gin.Engine, store treestore.Store, objects objectstore.Store, identity auth.IdentityProvider, cfg *config.Config) {
	api := router.Group("/api/v1")

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpireHours)

	profilesRepo := profiles.NewRepository(store)
	requestsRepo := requests.NewRepository(store)
	commentsRepo := comments.NewRepository(store)
	reportsRepo := reports.NewRepository(store)

	// reports doubles as the flag-clearing hook for request deletion
	requestsService := requests.NewService(requestsRepo, profilesRepo, objects, reportsRepo)

	moderationService := moderation.NewService(reportsRepo, requestsRepo, commentsRepo, profilesRepo)

	authLimiter := ratelimit.New(10, time.Minute)
	authLimiter.StartCleanup(5 * time.Minute)

	auth.RegisterRoutes(api, identity, profilesRepo, tokens, cfg, authLimiter)
	profiles.RegisterRoutes(api, store, objects, tokens)
	requests.RegisterRoutes(api, requestsService, requestsRepo, tokens)
	likes.RegisterRoutes(api, store, requestsRepo, tokens)
	follows.RegisterRoutes(api, store, profilesRepo, tokens)
	comments.RegisterRoutes(api, store, requestsRepo, profilesRepo, tokens)
	reports.RegisterRoutes(api, reportsRepo, requestsRepo, tokens)
	moderation.RegisterRoutes(api, moderationService, tokens)
	feed.RegisterRoutes(api, store, tokens)
}
