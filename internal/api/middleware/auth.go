package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/barbizo19/Bankist/internal/domain/session"
	"github.com/barbizo19/Bankist/internal/pkg/jwt"
)

// AuthMiddleware validates the bearer session token and checks it against the
// live session. Mutating operations are only permitted while logged in; a
// token from a session that was replaced or closed is rejected.
func AuthMiddleware(jwtService *jwt.JWTService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		current, ok := sessions.Current()
		if !ok || current != claims.Handle {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
			c.Abort()
			return
		}

		c.Set("handle", claims.Handle)
		c.Next()
	}
}
