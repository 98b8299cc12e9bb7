package comments

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/token"
	"github.com/servepupil/api/internal/pkg/treestore"
)

func RegisterRoutes(api *gin.RouterGroup, store treestore.Store, requestsRepo *requests.Repository, profilesRepo *profiles.Repository, tokens *token.Manager) {
	handler := NewHandler(NewRepository(store), requestsRepo, profilesRepo)

	api.POST("/requests/:owner/:id/comments",
		middleware.RequireAuth(tokens),
		middleware.RejectAdmin(),
		handler.CreateComment,
	)

	api.GET("/requests/:owner/:id/comments",
		middleware.RequireAuth(tokens),
		handler.ListComments,
	)

	api.DELETE("/requests/:owner/:id/comments/:commentId",
		middleware.RequireAuth(tokens),
		middleware.RequireAdmin(),
		handler.DeleteComment,
	)
}
