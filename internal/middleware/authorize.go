package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/api/internal/models"
	"atelier/api/internal/security"
)

// RequireRoles turns the authorization decision into a gin gate. The
// decision itself lives in security.Authorize; handlers behind this
// middleware never look at the raw role string.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := security.Authorize(ClaimsFrom(c), roles...)
		switch {
		case errors.Is(err, security.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		case errors.Is(err, security.ErrForbidden):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case err != nil:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		default:
			c.Next()
		}
	}
}
