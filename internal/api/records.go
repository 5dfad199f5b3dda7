package api

import (
	"errors"   // Matching store errors
	"net/http" // HTTP status codes

	"sentinel_engine/internal/domain"     // Record model
	"sentinel_engine/internal/middleware" // Request scoped logging
	"sentinel_engine/internal/query"      // Filtering and scoring
	"sentinel_engine/internal/reconcile"  // Record store

	"github.com/gin-gonic/gin" // Gin web framework
)

// AddRecordRequest is the manual entry form. Id and date are always generated.
type AddRecordRequest struct {
	User     string `json:"user"`     // Entity involved
	Amount   string `json:"amount"`   // Display amount, e.g. $1,200
	Status   string `json:"status"`   // Review status, any text
	Risk     string `json:"risk"`     // Risk tier, any text
	Method   string `json:"method"`   // Channel
	Location string `json:"location"` // Origin
}

// BulkDeleteRequest removes several records at once. With All set the
// selection is every record matching Search and Risk, as shown in the table.
type BulkDeleteRequest struct {
	IDs     []string `json:"ids"`     // Explicit selection
	All     bool     `json:"all"`     // Select the whole filtered set instead
	Search  string   `json:"search"`  // Filter used with All
	Risk    string   `json:"risk"`    // Filter used with All
	Confirm bool     `json:"confirm"` // Must be true
}

// ListRecordsHandler returns the filtered table plus tier counts over all records
func ListRecordsHandler(store *reconcile.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		all := store.List()
		filtered := query.Filter(all, c.Query("search"), c.DefaultQuery("risk", domain.RiskAll))
		c.JSON(http.StatusOK, gin.H{
			"records": filtered,         // Rows matching search and risk
			"counts":  query.Count(all), // Totals per tier, unfiltered
			"total":   len(all),         // Number of stored records
			"matched": len(filtered),    // Number of rows returned
		})
	}
}

// GetRecordHandler returns one record and its risk score for the detail panel
func GetRecordHandler(store *reconcile.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := store.Get(c.Param("id"))
		if errors.Is(err, reconcile.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"record": rec, "risk_score": query.RiskScore(rec.Risk)})
	}
}

// AddRecordHandler creates a record from manual entry
func AddRecordHandler(store *reconcile.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		rec, err := store.Add(c.Request.Context(), domain.Transaction{
			User:     req.User,
			Amount:   req.Amount,
			Status:   req.Status,
			Risk:     req.Risk,
			Method:   req.Method,
			Location: req.Location,
		})
		if err != nil {
			middleware.Log(c).WithError(err).Error("Failed to add record")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save record"})
			return
		}
		middleware.Log(c).WithField("id", rec.ID).Info("Manual record created")
		c.JSON(http.StatusCreated, gin.H{"record": rec})
	}
}

// DeleteRecordHandler removes one record. The caller must pass confirm=true.
func DeleteRecordHandler(store *reconcile.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Deletion requires confirm=true"})
			return
		}
		removed, err := store.Remove(c.Request.Context(), id)
		if err != nil {
			middleware.Log(c).WithError(err).WithField("id", id).Error("Failed to delete record")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		middleware.Log(c).WithField("id", id).Info("Record deleted")
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// BulkDeleteHandler removes every selected record in one mutation
func BulkDeleteHandler(store *reconcile.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !req.Confirm {
			c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Bulk deletion requires confirm=true"})
			return
		}

		ids := req.IDs
		if req.All {
			ids = query.SelectAll(query.Filter(store.List(), req.Search, req.Risk))
		}

		removed, err := store.RemoveMany(c.Request.Context(), ids)
		if err != nil {
			middleware.Log(c).WithError(err).Error("Failed to bulk delete records")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete records"})
			return
		}
		middleware.Log(c).WithField("removed", removed).Info("Bulk delete applied")
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	}
}
