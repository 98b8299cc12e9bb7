package moderation

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/pkg/response"
)

// Handler handles the admin moderation endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListReportedRequests godoc
// @Summary List reported requests
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]ReportedRequest}
// @Router /admin/reported/requests [get]
func (h *Handler) ListReportedRequests(c *gin.Context) {
	out, err := h.service.ReportedRequests(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, out)
}

// ListReportedComments godoc
// @Summary List reported comments
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]ReportedComment}
// @Router /admin/reported/comments [get]
func (h *Handler) ListReportedComments(c *gin.Context) {
	out, err := h.service.ReportedComments(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, out)
}

// ListReportedUsers godoc
// @Summary List reported users
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]ReportedUser}
// @Router /admin/reported/users [get]
func (h *Handler) ListReportedUsers(c *gin.Context) {
	out, err := h.service.ReportedUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, out)
}

// ResolveRequest godoc
// @Summary Delete a reported request and clear its flag
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.APIResponse{data=ResolveResponse}
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /admin/reported/requests/{id} [delete]
func (h *Handler) ResolveRequest(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.ResolveRequest(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ResolveResponse{Kind: "requests", TargetID: id, Action: "deleted"})
}

// ResolveComment godoc
// @Summary Delete a reported comment and clear its flag
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.APIResponse{data=ResolveResponse}
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /admin/reported/comments/{id} [delete]
func (h *Handler) ResolveComment(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.ResolveComment(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ResolveResponse{Kind: "comments", TargetID: id, Action: "deleted"})
}

// BlockUser godoc
// @Summary Block a reported user and clear their flag
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User UID"
// @Success 200 {object} response.APIResponse{data=ResolveResponse}
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /admin/users/{uid}/block [post]
func (h *Handler) BlockUser(c *gin.Context) {
	uid := c.Param("uid")
	if err := h.service.BlockUser(c.Request.Context(), uid); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ResolveResponse{Kind: "users", TargetID: uid, Action: "blocked"})
}
