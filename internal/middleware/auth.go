package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/auth"
)

const (
	adminClaimsKey = "adminClaims"
	// AdminTokenHeader is the alternative to an Authorization bearer header.
	AdminTokenHeader = "X-Admin-Token"
)

// AdminAuth rejects requests that do not carry a valid admin token and
// stores the verified claims in the context.
func AdminAuth(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := guard.Authenticate(extractToken(c))
		if err != nil {
			logRequestWarning(c, "admin authentication failed", err)
			RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// AdminClaims returns the claims stored by AdminAuth, or nil.
func AdminClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(adminClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader(AdminTokenHeader))
}
