package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
)

// AdminAuthMiddleware gates admin routes behind an exact shared-secret
// match. The configured key is never logged.
type AdminAuthMiddleware struct {
	log    *logger.Logger
	apiKey string
}

func NewAdminAuthMiddleware(log *logger.Logger, apiKey string) *AdminAuthMiddleware {
	middlewareLog := log.With("middleware", "AdminAuthMiddleware")
	return &AdminAuthMiddleware{log: middlewareLog, apiKey: strings.TrimSpace(apiKey)}
}

func (am *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// No key configured means admin access is disabled outright.
		if am.apiKey == "" {
			am.log.Warn("Admin request rejected: no ADMIN_API_KEY configured")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Valid admin API key required",
			})
			return
		}

		provided := extractAdminKey(c)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(am.apiKey)) != 1 {
			am.log.Warn("Admin request rejected: credential mismatch", "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Valid admin API key required",
			})
			return
		}

		c.Next()
	}
}

func extractAdminKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader("X-Admin-Api-Key")); key != "" {
		return key
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
