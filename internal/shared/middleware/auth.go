package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/jwt"
)

const (
	// Context keys set by AuthMiddleware
	ContextKeyActorID = "actor_id"
	ContextKeyRole    = "role"
)

// AuthMiddleware validates the Bearer token and stores the authenticated
// actor in the request context. Every mutation handler reads the actor
// from here when recording audit entries.
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		actorID, err := uuid.Parse(claims.ActorID)
		if err != nil {
			response.Unauthorized(c, "invalid actor ID in token")
			c.Abort()
			return
		}

		c.Set(ContextKeyActorID, actorID)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// GetActorID retrieves the authenticated actor from the gin context.
// Returns false when the request went through an unauthenticated route.
func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextKeyActorID)
	if !exists {
		return uuid.Nil, false
	}

	actorID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return actorID, true
}
