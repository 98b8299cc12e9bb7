package reports

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/response"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Handler handles report HTTP endpoints
type Handler struct {
	repo     *Repository
	requests *requests.Repository
}

func NewHandler(repo *Repository, requestsRepo *requests.Repository) *Handler {
	return &Handler{repo: repo, requests: requestsRepo}
}

// CreateReport godoc
// @Summary Report a request, comment or user
// @Description Flags the target for admin review. The first report creates the flag; repeat reports are acknowledged without change.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param report body CreateReportRequest true "Report target"
// @Success 201 {object} response.APIResponse{data=ReportResponse}
// @Success 200 {object} response.APIResponse{data=ReportResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	uid := c.GetString("uid")

	var body CreateReportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	kind, ok := ParseKind(body.Kind)
	if !ok {
		response.BadRequest(c, "Unknown report kind", "UNKNOWN_REPORT_KIND")
		return
	}

	if kind == KindRequests {
		owner, err := h.requests.FindOwner(c.Request.Context(), body.TargetID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			response.FromError(c, err)
			return
		}
		if owner == uid {
			response.Forbidden(c, "Cannot report your own request", "CANNOT_REPORT_OWN")
			return
		}
	}

	err := h.repo.Report(c.Request.Context(), kind, body.TargetID)
	if errors.Is(err, apperrors.ErrAlreadyReported) {
		response.Accepted(c, ReportResponse{
			Kind:     string(kind),
			TargetID: body.TargetID,
			Status:   StatusAlreadyReported,
		}, "ALREADY_REPORTED", "Target was already reported")
		return
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, ReportResponse{
		Kind:     string(kind),
		TargetID: body.TargetID,
		Status:   StatusReported,
	})
}
