package api

import (
	"bytes"    // Export buffer
	"errors"   // Matching codec errors
	"io"       // Upload readers
	"net/http" // HTTP status codes
	"strings"  // Content type checks

	"sentinel_engine/internal/codec"      // CSV parsing and writing
	"sentinel_engine/internal/domain"     // Record model
	"sentinel_engine/internal/middleware" // Request scoped logging
	"sentinel_engine/internal/query"      // Filtering and selection
	"sentinel_engine/internal/reconcile"  // Record store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// MaxUploadBytes caps an import body
const MaxUploadBytes = 10 << 20

// ExportFilename is the attachment name of every export
const ExportFilename = "transactions.csv"

// ImportHandler merges an uploaded CSV file into the store. The file comes
// either as the "file" part of a multipart form or as the raw request body.
// A malformed file is rejected whole and leaves the store untouched.
func ImportHandler(store *reconcile.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

		body, name, err := uploadReader(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer body.Close()

		rows, err := codec.Parse(body)
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			middleware.Log(c).WithError(err).WithField("file", name).Warn("Rejected CSV import")
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		res, err := store.ImportMerge(c.Request.Context(), rows)
		if err != nil {
			middleware.Log(c).WithError(err).WithField("file", name).Error("Failed to import records")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import records"})
			return
		}

		middleware.Log(c).WithFields(logrus.Fields{
			"file":     name,
			"imported": len(res.Records),
			"rekeyed":  res.Rekeyed,
		}).Info("CSV imported")
		c.JSON(http.StatusCreated, gin.H{
			"imported": len(res.Records), // Rows added
			"rekeyed":  res.Rekeyed,      // Rows whose id was replaced
			"records":  res.Records,      // The added rows, in file order
		})
	}
}

func uploadReader(c *gin.Context) (io.ReadCloser, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, "", errors.New("multipart upload needs a \"file\" part")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		return f, fh.Filename, nil
	}
	return c.Request.Body, "body", nil
}

// ExportHandler writes the selected records as a CSV attachment. The
// selection is ids=a,b when given, otherwise the rows matching search and
// risk. An empty selection is a 404 and nothing is written.
func ExportHandler(store *reconcile.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		all := store.List()

		var selected []domain.Transaction
		if ids := query.SplitIDs(c.Query("ids")); len(ids) > 0 {
			selected = query.Select(all, ids)
		} else {
			selected = query.Filter(all, c.Query("search"), c.DefaultQuery("risk", domain.RiskAll))
		}
		if len(selected) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No records available for export"})
			return
		}

		var buf bytes.Buffer
		if err := codec.Serialize(&buf, selected); err != nil {
			middleware.Log(c).WithError(err).Error("Failed to export records")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export records"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}
