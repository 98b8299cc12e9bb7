package requests

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/middleware"
	"github.com/servepupil/api/internal/pkg/token"
)

func RegisterRoutes(api *gin.RouterGroup, service *Service, repo *Repository, tokens *token.Manager) {
	handler := NewHandler(service, repo)

	reqs := api.Group("/requests")
	reqs.Use(middleware.RequireAuth(tokens))
	{
		reqs.POST("", middleware.RejectAdmin(), handler.CreateRequest)
		reqs.GET("/mine", handler.ListMyRequests)
		reqs.PUT("/:id", middleware.RejectAdmin(), handler.EditRequest)
		reqs.GET("/:owner/:id", handler.GetRequest)
		reqs.DELETE("/:owner/:id", handler.DeleteRequest)
	}

	api.GET("/users/:uid/requests", middleware.RequireAuth(tokens), handler.ListUserRequests)

	api.GET("/feed/global", middleware.RequireAuth(tokens), handler.GlobalFeed)
}
