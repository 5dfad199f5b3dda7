package middleware

import (
	"net/http" // HTTP status codes

	"sentinel_engine/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RequireRole checks the analyst's role from the database on each request,
// so a demotion takes effect before the token expires
func RequireRole(db *gorm.DB, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		analystID, exists := c.Get(KeyAnalystID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var analyst domain.Analyst
		if err := db.First(&analyst, analystID).Error; err != nil {
			// Unknown analyst, e.g. deleted after the token was issued
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Analyst not found"})
			return
		}
		if analyst.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role " + role + " required"})
			return
		}
		c.Next()
	}
}
