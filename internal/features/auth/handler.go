package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/config"
	"github.com/servepupil/api/internal/features/profiles"
	"github.com/servepupil/api/internal/pkg/logger"
	"github.com/servepupil/api/internal/pkg/response"
	"github.com/servepupil/api/internal/pkg/token"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Handler handles the identity endpoints
type Handler struct {
	provider IdentityProvider
	profiles *profiles.Repository
	tokens   *token.Manager
	cfg      *config.Config
}

func NewHandler(provider IdentityProvider, profilesRepo *profiles.Repository, tokens *token.Manager, cfg *config.Config) *Handler {
	return &Handler{provider: provider, profiles: profilesRepo, tokens: tokens, cfg: cfg}
}

// Signup godoc
// @Summary Create a firebase account
// @Tags auth
// @Accept json
// @Produce json
// @Param account body SignupRequest true "Email and password"
// @Success 201 {object} response.APIResponse{data=SignupResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var body SignupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Valid email and a password of at least 6 characters are required")
		return
	}

	uid, err := h.provider.CreateUser(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	logger.Info("auth: created account %s", uid)
	response.Created(c, SignupResponse{UID: uid, Email: body.Email})
}

// Session godoc
// @Summary Exchange a firebase ID token for a backend session
// @Description Blocked accounts are refused a session. Admin status is derived from the reserved admin email.
// @Tags auth
// @Accept json
// @Produce json
// @Param session body SessionRequest true "Firebase ID token"
// @Success 200 {object} response.APIResponse{data=SessionResponse}
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /auth/session [post]
func (h *Handler) Session(c *gin.Context) {
	var body SessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	uid, email, err := h.provider.VerifyIDToken(c.Request.Context(), body.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}

	blocked, err := h.profiles.IsBlocked(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if blocked {
		response.FromError(c, apperrors.ErrBlocked)
		return
	}

	admin := h.cfg.IsAdminEmail(email)
	jwt, err := h.tokens.Generate(uid, email, admin)
	if err != nil {
		response.InternalServerError(c, "Could not issue session token")
		return
	}

	response.Success(c, SessionResponse{Token: jwt, UID: uid, Email: email, Admin: admin})
}

// PasswordReset godoc
// @Summary Generate a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body PasswordResetRequest true "Account email"
// @Success 200 {object} response.APIResponse{data=PasswordResetResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /auth/password-reset [post]
func (h *Handler) PasswordReset(c *gin.Context) {
	var body PasswordResetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "A valid email is required")
		return
	}

	link, err := h.provider.PasswordResetLink(c.Request.Context(), body.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, PasswordResetResponse{ResetLink: link})
}
