package likes

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/response"
)

// Handler handles like HTTP endpoints
type Handler struct {
	repo     *Repository
	requests *requests.Repository
}

func NewHandler(repo *Repository, requestsRepo *requests.Repository) *Handler {
	return &Handler{repo: repo, requests: requestsRepo}
}

// ToggleLike godoc
// @Summary Toggle a like on a request
// @Description Adds the caller to the likedBy set if absent, removes otherwise. Self-like is not prevented.
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Owner UID"
// @Param id path string true "Request ID"
// @Success 200 {object} response.APIResponse{data=LikeResponse}
// @Failure 404 {object} response.APIResponse
// @Router /requests/{owner}/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	uid := c.GetString("uid")
	ownerUID := c.Param("owner")
	requestID := c.Param("id")

	if _, err := h.requests.Get(c.Request.Context(), ownerUID, requestID); err != nil {
		response.FromError(c, err)
		return
	}

	liked, count, err := h.repo.Toggle(c.Request.Context(), ownerUID, requestID, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, LikeResponse{
		RequestID: requestID,
		Liked:     liked,
		LikeCount: count,
	})
}
