package requests

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/pkg/response"
)

// Handler handles request HTTP endpoints
type Handler struct {
	service *Service
	repo    *Repository
}

func NewHandler(service *Service, repo *Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

func openImagePart(c *gin.Context) (multipart.File, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil || header.Size == 0 {
		return nil, false
	}
	return file, true
}

// CreateRequest godoc
// @Summary Create a help request
// @Description Requires an existing profile, non-empty description/type/place and an image
// @Tags requests
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param description formData string true "Description"
// @Param requestType formData string true "Request type"
// @Param place formData string true "Place"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param image formData file true "Request image"
// @Success 201 {object} response.APIResponse{data=RequestResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	uid := c.GetString("uid")

	var form SaveRequestForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}
	if err := ValidateSaveRequestForm(&form); err != nil {
		response.FromError(c, err)
		return
	}

	in := CreateInput{
		Description: form.Description,
		RequestType: form.RequestType,
		Place:       form.Place,
		Latitude:    form.Latitude,
		Longitude:   form.Longitude,
	}
	if file, ok := openImagePart(c); ok {
		defer file.Close()
		in.Image = file
	}

	created, err := h.service.Create(c.Request.Context(), uid, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, created.ToResponse(uid), "Request created")
}

// EditRequest godoc
// @Summary Edit an owned request
// @Tags requests
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.APIResponse{data=RequestResponse}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /requests/{id} [put]
func (h *Handler) EditRequest(c *gin.Context) {
	uid := c.GetString("uid")
	requestID := c.Param("id")

	var form SaveRequestForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}
	if err := ValidateSaveRequestForm(&form); err != nil {
		response.FromError(c, err)
		return
	}

	in := EditInput{
		Description: form.Description,
		RequestType: form.RequestType,
		Place:       form.Place,
		Latitude:    form.Latitude,
		Longitude:   form.Longitude,
	}
	if file, ok := openImagePart(c); ok {
		defer file.Close()
		in.Image = file
	}

	updated, err := h.service.Edit(c.Request.Context(), uid, requestID, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, updated.ToResponse(uid), "Request updated")
}

// DeleteRequest godoc
// @Summary Delete a request
// @Description Owner or admin. Removes the whole subtree and clears any report flag.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Owner UID"
// @Param id path string true "Request ID"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /requests/{owner}/{id} [delete]
func (h *Handler) DeleteRequest(c *gin.Context) {
	err := h.service.Delete(
		c.Request.Context(),
		c.GetString("uid"),
		c.GetBool("admin"),
		c.Param("owner"),
		c.Param("id"),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil, "Request deleted")
}

// GetRequest godoc
// @Summary Get a single request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Owner UID"
// @Param id path string true "Request ID"
// @Success 200 {object} response.APIResponse{data=RequestResponse}
// @Failure 404 {object} response.APIResponse
// @Router /requests/{owner}/{id} [get]
func (h *Handler) GetRequest(c *gin.Context) {
	req, err := h.repo.Get(c.Request.Context(), c.Param("owner"), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, req.ToResponse(c.GetString("uid")))
}

// ListMyRequests godoc
// @Summary List the caller's requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]RequestResponse}
// @Router /requests/mine [get]
func (h *Handler) ListMyRequests(c *gin.Context) {
	uid := c.GetString("uid")
	reqs, err := h.repo.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toResponses(reqs, uid))
}

// ListUserRequests godoc
// @Summary List one user's requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User UID"
// @Success 200 {object} response.APIResponse{data=[]RequestResponse}
// @Router /users/{uid}/requests [get]
func (h *Handler) ListUserRequests(c *gin.Context) {
	reqs, err := h.repo.ListByOwner(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toResponses(reqs, c.GetString("uid")))
}

// GlobalFeed godoc
// @Summary Browse all other users' requests
// @Description One-shot read of the whole requests tree, viewer's own requests excluded, newest first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]RequestResponse}
// @Router /feed/global [get]
func (h *Handler) GlobalFeed(c *gin.Context) {
	uid := c.GetString("uid")
	reqs, err := h.service.GlobalFeed(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toResponses(reqs, uid))
}

func toResponses(reqs []*Request, viewerUID string) []RequestResponse {
	out := make([]RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.ToResponse(viewerUID))
	}
	return out
}
