package profiles

import (
	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/pkg/response"
)

// RequireNotBlocked re-checks the blocked flag on mutating routes. A
// session issued before the block would otherwise stay usable until it
// expires.
func RequireNotBlocked(repo *Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		blocked, err := repo.IsBlocked(c.Request.Context(), c.GetString("uid"))
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		if blocked {
			response.Forbidden(c, "Account is blocked", "ACCOUNT_BLOCKED")
			c.Abort()
			return
		}
		c.Next()
	}
}
