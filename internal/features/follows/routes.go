package follows

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
)

func RegisterRoutes(api *gin.RouterGroup, store treestore.Store, profilesRepo *profiles.Repository, tokens *token.Manager) {
	handler := NewHandler(NewRepository(store), profilesRepo)

	api.POST("/users/:uid/follow",
		middleware.RequireAuth(tokens),
		middleware.RejectAdmin(),
		handler.ToggleFollow,
	)

	api.POST("/admin/reconcile/:uid",
		middleware.RequireAuth(tokens),
		middleware.RequireAdmin(),
		handler.Reconcile,
	)
}
