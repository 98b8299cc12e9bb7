package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/pkg/response"
	"github.com/servepupil/api/internal/pkg/token"
)

// RequireAuth validates the bearer token and stores the identity facts in
// the request context: uid, email and the admin flag.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and raw token in header
		fields := strings.Fields(authHeader)
		var tokenString string
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		} else {
			tokenString = authHeader
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("uid", claims.UID)
		c.Set("email", claims.Email)
		c.Set("admin", claims.Admin)
		c.Next()
	}
}

// RequireAdmin allows only the reserved admin identity through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("admin") {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RejectAdmin blocks the admin identity from content-producing routes: the
// admin views and moderates, it does not post.
func RejectAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool("admin") {
			response.Forbidden(c, "Admin account cannot perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
