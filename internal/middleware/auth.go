package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/api/internal/config"
	"atelier/api/internal/security"
)

const claimsKey = "session_claims"

// Auth verifies the session token and threads the verified claims into
// the request context. Verification is purely cryptographic: tokens are
// stateless, so there is no store lookup and no revocation check here.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := security.ParseSessionToken(header, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims placed by Auth, or nil when the
// request never authenticated.
func ClaimsFrom(c *gin.Context) *security.SessionClaims {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := val.(*security.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
