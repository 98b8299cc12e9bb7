package feed

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
)

func RegisterRoutes(api *gin.RouterGroup, store treestore.Store, tokens *token.Manager) {
	handler := NewHandler(store)

	api.GET("/feed/personal",
		middleware.RequireAuth(tokens),
		handler.PersonalFeed,
	)

	api.GET("/feed/personal/live",
		middleware.RequireAuth(tokens),
		handler.PersonalFeedLive,
	)
}
