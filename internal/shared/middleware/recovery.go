package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/shared/response"
)

// Recovery turns panics into a 500 envelope instead of a dropped
// connection, logging the stack under the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error().
				Str("request_id", c.GetString("request_id")).
				Str("path", c.Request.URL.Path).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
