package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"sentinel_engine/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware
const (
	KeyAnalystID = "analystID"
	KeyUsername  = "username"
)

// JWTAuthMiddleware validates JWT tokens and extracts analyst information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(KeyAnalystID, claims.AnalystID) // Store analyst id in context
		c.Set(KeyUsername, claims.Username)
		c.Next()
	}
}
