package reports

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/token"
)

func RegisterRoutes(api *gin.RouterGroup, repo *Repository, requestsRepo *requests.Repository, tokens *token.Manager) {
	handler := NewHandler(repo, requestsRepo)

	api.POST("/reports",
		middleware.RequireAuth(tokens),
		middleware.RejectAdmin(),
		handler.CreateReport,
	)
}
