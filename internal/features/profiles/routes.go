package profiles

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/objectstore"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
)

func RegisterRoutes(api *gin.RouterGroup, store treestore.Store, objects objectstore.Store, tokens *token.Manager) {
	repo := NewRepository(store)
	handler := NewHandler(repo, objects)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth(tokens))
	{
		users.PUT("/me", middleware.RejectAdmin(), RequireNotBlocked(repo), handler.SaveProfile)
		users.GET("", middleware.RequireAdmin(), handler.ListUsers)
		users.GET("/:uid", handler.GetProfile)
		users.GET("/:uid/followers", handler.ListFollowers)
		users.GET("/:uid/following", handler.ListFollowing)
	}
}
