package likes

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
)

func RegisterRoutes(api *gin.RouterGroup, store treestore.Store, requestsRepo *requests.Repository, tokens *token.Manager) {
	handler := NewHandler(NewRepository(store), requestsRepo)

	api.POST("/requests/:owner/:id/like",
		middleware.RequireAuth(tokens),
		middleware.RejectAdmin(),
		handler.ToggleLike,
	)
}
