package api

import (
	"errors"   // Duplicate key detection
	"net/http" // HTTP status codes
	"strings"  // Cache key building

	"sentinel_engine/internal/domain"     // Importing domain models
	"sentinel_engine/internal/middleware" // Request scoped logging
	"sentinel_engine/internal/utils"      // Response cache

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// ledgerFilters are the optional query parameters of the read endpoint
var ledgerFilters = []string{"risk", "status", "user"}

// CreateLedgerEntryRequest adds a row to the relational transactions table
type CreateLedgerEntryRequest struct {
	TxRef    string `json:"tx_ref" binding:"required"`                                 // External reference
	UserName string `json:"user_name" binding:"required"`                              // Entity involved
	Amount   string `json:"amount" binding:"required"`                                 // Decimal string, e.g. 12400.00
	Status   string `json:"status" binding:"omitempty,oneof=Pending Verified Flagged"` // Review status
	Risk     string `json:"risk" binding:"omitempty,oneof=High Medium Low"`            // Risk tier
	Method   string `json:"method"`                                                    // Channel
	Location string `json:"location"`                                                  // Origin
}

// ListTransactionsHandler returns rows of the transactions table, newest
// first, optionally filtered by risk, status or a user name fragment
func ListTransactionsHandler(db *gorm.DB, cache *utils.ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		// Build cache key from the filter params
		var keyParts []string
		for _, k := range ledgerFilters {
			keyParts = append(keyParts, k+"="+c.Query(k))
		}
		cacheKey := strings.Join(keyParts, ":")

		var cached struct {
			Transactions []domain.LedgerEntry `json:"transactions"` // List of rows
			Total        int                  `json:"total"`        // Number of rows
		}
		found, err := cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			middleware.Log(c).WithError(err).Warn("Ledger cache read failed")
		}
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"transactions": cached.Transactions, // List of rows
				"total":        cached.Total,        // Number of rows
				"cached":       true,                // Indicate response is from cache
			})
			return
		}

		q := db.WithContext(ctx).Model(&domain.LedgerEntry{}) // Start building the query
		if risk := c.Query("risk"); risk != "" && risk != domain.RiskAll {
			q = q.Where("risk = ?", risk)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if user := c.Query("user"); user != "" {
			q = q.Where("LOWER(user_name) LIKE ?", "%"+strings.ToLower(user)+"%")
		}

		txs := []domain.LedgerEntry{}
		if err := q.Order("created_at desc").Order("id desc").Find(&txs).Error; err != nil {
			middleware.Log(c).WithError(err).Error("Failed to fetch transactions")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}

		respData := gin.H{
			"transactions": txs,      // List of rows
			"total":        len(txs), // Number of rows
			"cached":       false,    // Indicate response is not from cache
		}
		if err := cache.Set(ctx, cacheKey, respData); err != nil {
			middleware.Log(c).WithError(err).Warn("Ledger cache write failed")
		}
		c.JSON(http.StatusOK, respData)
	}
}

// CreateTransactionHandler inserts a ledger row and drops cached listings
func CreateTransactionHandler(db *gorm.DB, cache *utils.ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLedgerEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a decimal number"})
			return
		}

		entry := domain.LedgerEntry{
			TxRef:    strings.TrimSpace(req.TxRef),
			UserName: strings.TrimSpace(req.UserName),
			Amount:   amount.Round(2),
			Status:   req.Status,
			Risk:     req.Risk,
			Method:   req.Method,
			Location: req.Location,
		}
		if entry.Status == "" {
			entry.Status = domain.StatusPending
		}
		if entry.Risk == "" {
			entry.Risk = domain.RiskMedium
		}

		if err := db.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Transaction reference already exists"})
				return
			}
			middleware.Log(c).WithError(err).Error("Failed to create transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
		if err := cache.Invalidate(c.Request.Context()); err != nil {
			middleware.Log(c).WithError(err).Warn("Ledger cache invalidation failed")
		}
		middleware.Log(c).WithField("tx_ref", entry.TxRef).Info("Ledger entry created")
		c.JSON(http.StatusCreated, gin.H{"transaction": entry})
	}
}
