package comments

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/logger"
	"github.com/servepupil/api/internal/pkg/response"
)

// Handler handles comment HTTP endpoints
type Handler struct {
	repo     *Repository
	requests *requests.Repository
	profiles *profiles.Repository
}

func NewHandler(repo *Repository, requestsRepo *requests.Repository, profilesRepo *profiles.Repository) *Handler {
	return &Handler{repo: repo, requests: requestsRepo, profiles: profilesRepo}
}

// CreateComment godoc
// @Summary Post a comment on a request
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Owner UID"
// @Param id path string true "Request ID"
// @Param comment body CreateCommentRequest true "Comment body"
// @Success 201 {object} response.APIResponse{data=CommentResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /requests/{owner}/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	uid := c.GetString("uid")
	ownerUID := c.Param("owner")
	requestID := c.Param("id")

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	text, err := validateText(body.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if _, err := h.requests.Get(c.Request.Context(), ownerUID, requestID); err != nil {
		response.FromError(c, err)
		return
	}

	id, err := h.repo.Add(c.Request.Context(), ownerUID, requestID, uid, text)
	if err != nil {
		response.FromError(c, err)
		return
	}

	comment, err := h.repo.Get(c.Request.Context(), ownerUID, requestID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	name := h.authorName(c.Request.Context(), map[string]string{}, uid)
	response.Created(c, CommentResponse{
		ID:         comment.ID,
		UID:        comment.UID,
		AuthorName: name,
		Text:       comment.Text,
		Timestamp:  comment.Timestamp,
	})
}

// ListComments godoc
// @Summary List a request's comments
// @Description Comments are returned oldest first, each enriched with the author's current display name.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Owner UID"
// @Param id path string true "Request ID"
// @Success 200 {object} response.APIResponse{data=[]CommentResponse}
// @Failure 404 {object} response.APIResponse
// @Router /requests/{owner}/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	ownerUID := c.Param("owner")
	requestID := c.Param("id")

	if _, err := h.requests.Get(c.Request.Context(), ownerUID, requestID); err != nil {
		response.FromError(c, err)
		return
	}

	list, err := h.repo.List(c.Request.Context(), ownerUID, requestID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// One name lookup per distinct author, not per comment.
	names := make(map[string]string)
	out := make([]CommentResponse, 0, len(list))
	for _, cm := range list {
		out = append(out, CommentResponse{
			ID:         cm.ID,
			UID:        cm.UID,
			AuthorName: h.authorName(c.Request.Context(), names, cm.UID),
			Text:       cm.Text,
			Timestamp:  cm.Timestamp,
		})
	}
	response.Success(c, out)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Owner UID"
// @Param id path string true "Request ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /requests/{owner}/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	ownerUID := c.Param("owner")
	requestID := c.Param("id")
	commentID := c.Param("commentId")

	if _, err := h.repo.Get(c.Request.Context(), ownerUID, requestID, commentID); err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), ownerUID, requestID, commentID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": commentID})
}

func (h *Handler) authorName(ctx context.Context, cache map[string]string, uid string) string {
	if name, ok := cache[uid]; ok {
		return name
	}
	name, err := h.profiles.Name(ctx, uid)
	if err != nil {
		logger.Warn("comments: name lookup failed for %s: %v", uid, err)
		name = ""
	}
	cache[uid] = name
	return name
}
