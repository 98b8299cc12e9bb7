package moderation

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/token"
)

func RegisterRoutes(api *gin.RouterGroup, service *Service, tokens *token.Manager) {
	handler := NewHandler(service)

	admin := api.Group("/admin", middleware.RequireAuth(tokens), middleware.RequireAdmin())

	admin.GET("/reported/requests", handler.ListReportedRequests)
	admin.GET("/reported/comments", handler.ListReportedComments)
	admin.GET("/reported/users", handler.ListReportedUsers)

	admin.DELETE("/reported/requests/:id", handler.ResolveRequest)
	admin.DELETE("/reported/comments/:id", handler.ResolveComment)
	admin.POST("/users/:uid/block", handler.BlockUser)
}
