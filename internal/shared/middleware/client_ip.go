package middleware

import (
	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
)

// ClientIPMiddleware resolves the client IP behind proxies and injects it
// into both the gin context and the request context.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set("client_ip", clientIP)
		c.Request = c.Request.WithContext(shared.WithClientIP(c.Request.Context(), clientIP))

		c.Next()
	}
}
