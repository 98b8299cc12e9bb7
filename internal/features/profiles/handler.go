package profiles

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/pkg/logger"
	"github.com/servepupil/api/internal/pkg/objectstore"
	"github.com/servepupil/api/internal/pkg/response"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Handler handles profile HTTP requests
type Handler struct {
	repo    *Repository
	objects objectstore.Store
}

func NewHandler(repo *Repository, objects objectstore.Store) *Handler {
	return &Handler{repo: repo, objects: objects}
}

// SaveProfile godoc
// @Summary Create or update the caller's profile
// @Description Saves name/bio/phone and optionally a profile image. Image upload happens before the record write; a record-write failure after a successful upload leaves the uploaded image in place.
// @Tags profiles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Display name"
// @Param bio formData string false "Bio"
// @Param phone formData string false "Phone"
// @Param image formData file false "Profile image"
// @Success 200 {object} response.APIResponse{data=ProfileResponse}
// @Failure 400 {object} response.APIResponse
// @Router /users/me [put]
func (h *Handler) SaveProfile(c *gin.Context) {
	uid := c.GetString("uid")

	var req SaveProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}
	if err := ValidateSaveProfileRequest(&req); err != nil {
		response.FromError(c, err)
		return
	}

	// Keep the existing image reference unless a new one was sent.
	imageURL := ""
	if existing, err := h.repo.Get(c.Request.Context(), uid); err == nil {
		imageURL = existing.ImageURL
	}

	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		if header.Size == 0 {
			response.BadRequest(c, "image file is empty", "VALIDATION_FAILED")
			return
		}
		path := fmt.Sprintf("profile_images/%s.jpg", uid)
		url, err := h.objects.Upload(c.Request.Context(), path, file)
		if err != nil {
			response.FromError(c, apperrors.Remote(err))
			return
		}
		imageURL = url
	}

	user := &User{Name: req.Name, Bio: req.Bio, Phone: req.Phone, ImageURL: imageURL}
	if err := h.repo.Save(c.Request.Context(), uid, user); err != nil {
		// The uploaded image is orphaned here; accepted, not cleaned up.
		logger.Warn("profiles: record write failed after upload for %s: %v", uid, err)
		response.FromError(c, err)
		return
	}

	h.respondWithProfile(c, uid)
}

// GetProfile godoc
// @Summary Get a user's profile
// @Description Profile record plus live follower/following counts
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User ID"
// @Success 200 {object} response.APIResponse{data=ProfileResponse}
// @Failure 404 {object} response.APIResponse
// @Router /users/{uid} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	h.respondWithProfile(c, c.Param("uid"))
}

func (h *Handler) respondWithProfile(c *gin.Context, uid string) {
	user, err := h.repo.Get(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	followers, following, err := h.repo.Counts(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, ProfileResponse{
		UID:       user.UID,
		Name:      user.Name,
		Bio:       user.Bio,
		Phone:     user.Phone,
		ImageURL:  user.ImageURL,
		IsBlocked: user.IsBlocked,
		Followers: followers,
		Following: following,
	})
}

// ListUsers godoc
// @Summary List all users
// @Description Full scan of the users tree. Admin only.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]ProfileResponse}
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]ProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ProfileResponse{
			UID:       u.UID,
			Name:      u.Name,
			Bio:       u.Bio,
			Phone:     u.Phone,
			ImageURL:  u.ImageURL,
			IsBlocked: u.IsBlocked,
		})
	}
	response.Success(c, out)
}

// ListFollowers godoc
// @Summary List a user's followers
// @Description Resolves each follower uid to its profile record (fan-out join)
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User ID"
// @Success 200 {object} response.APIResponse{data=[]ProfileResponse}
// @Router /users/{uid}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	ids, err := h.repo.FollowerIDs(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.respondWithUserList(c, ids)
}

// ListFollowing godoc
// @Summary List the users a user follows
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User ID"
// @Success 200 {object} response.APIResponse{data=[]ProfileResponse}
// @Router /users/{uid}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	ids, err := h.repo.FollowingIDs(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.respondWithUserList(c, ids)
}

func (h *Handler) respondWithUserList(c *gin.Context, ids []string) {
	out := make([]ProfileResponse, 0, len(ids))
	for _, id := range ids {
		user, err := h.repo.Get(c.Request.Context(), id)
		if err != nil {
			// Edge pointing at a deleted profile; skip it.
			continue
		}
		out = append(out, ProfileResponse{
			UID:      user.UID,
			Name:     user.Name,
			Bio:      user.Bio,
			Phone:    user.Phone,
			ImageURL: user.ImageURL,
		})
	}
	response.Success(c, out)
}
