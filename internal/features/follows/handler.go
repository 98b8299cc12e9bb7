package follows

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/pkg/response"
)

// Handler handles follow HTTP endpoints
type Handler struct {
	repo     *Repository
	profiles *profiles.Repository
}

func NewHandler(repo *Repository, profilesRepo *profiles.Repository) *Handler {
	return &Handler{repo: repo, profiles: profilesRepo}
}

// ToggleFollow godoc
// @Summary Follow or unfollow a user
// @Description Dual-write across both users' subtrees. A half-completed toggle surfaces as PARTIAL_FAILURE.
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Target user's UID"
// @Success 200 {object} response.APIResponse{data=FollowResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /users/{uid}/follow [post]
func (h *Handler) ToggleFollow(c *gin.Context) {
	currentUID := c.GetString("uid")
	targetUID := c.Param("uid")

	if currentUID == targetUID {
		response.BadRequest(c, "You cannot follow yourself", "CANNOT_FOLLOW_SELF")
		return
	}

	if _, err := h.profiles.Get(c.Request.Context(), targetUID); err != nil {
		response.FromError(c, err)
		return
	}

	following, err := h.repo.Toggle(c.Request.Context(), currentUID, targetUID)
	if err != nil {
		// Partial failures included: the caller has to know the graph may
		// be half-written.
		response.FromError(c, err)
		return
	}

	targetFollowers, _, err := h.profiles.Counts(c.Request.Context(), targetUID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	_, myFollowing, err := h.profiles.Counts(c.Request.Context(), currentUID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, FollowResponse{
		TargetUID:       targetUID,
		Following:       following,
		TargetFollowers: targetFollowers,
		MyFollowing:     myFollowing,
	})
}

// Reconcile godoc
// @Summary Repair follow-graph drift around a user
// @Description Re-mirrors any half-written follow edges. Admin only.
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User UID"
// @Success 200 {object} response.APIResponse{data=ReconcileReport}
// @Router /admin/reconcile/{uid} [post]
func (h *Handler) Reconcile(c *gin.Context) {
	report, err := h.repo.Reconcile(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}
