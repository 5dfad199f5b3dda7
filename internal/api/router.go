package api

import (
	"net/http" // HTTP status codes

	"sentinel_engine/internal/domain"     // Roles
	"sentinel_engine/internal/middleware" // Auth and request logging
	"sentinel_engine/internal/reconcile"  // Record store
	"sentinel_engine/internal/utils"      // Response cache

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Banner is the body of GET /
const Banner = "Sentinel Risk Engine API running"

// Deps are the collaborators the HTTP routes need
type Deps struct {
	Store     *reconcile.Store     // Dashboard records
	DB        *gorm.DB             // Analysts and the transactions table
	Cache     *utils.ResponseCache // Cache for the transactions listing
	JWTSecret string               // Token signing key
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, Banner) })
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Analyst accounts
	r.POST("/analysts", RegisterHandler(d.DB))
	r.POST("/analysts/login", LoginHandler(d.DB, d.JWTSecret))

	auth := middleware.JWTAuthMiddleware(d.JWTSecret)
	lead := middleware.RequireRole(d.DB, domain.RoleLead)

	// Dashboard records, reads are public
	records := r.Group("/records")
	records.GET("", ListRecordsHandler(d.Store))
	records.GET("/export", ExportHandler(d.Store))
	records.GET("/:id", GetRecordHandler(d.Store))
	records.POST("", auth, AddRecordHandler(d.Store))
	records.POST("/import", auth, ImportHandler(d.Store))
	records.POST("/bulk-delete", auth, lead, BulkDeleteHandler(d.Store))
	records.DELETE("/:id", auth, DeleteRecordHandler(d.Store))

	// Relational transactions table
	r.GET("/transactions", ListTransactionsHandler(d.DB, d.Cache))
	r.POST("/transactions", auth, lead, CreateTransactionHandler(d.DB, d.Cache))

	return r
}
