package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request id generation
	"github.com/sirupsen/logrus" // Logging library
)

const (
	HeaderRequestID = "X-Request-ID"
	KeyRequestID    = "requestID"

	maxRequestIDLen = 128
)

// RequestID reuses a caller supplied X-Request-ID or generates one, echoes it
// on the response and logs one line per request tagged with it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(KeyRequestID, id)
		c.Header(HeaderRequestID, id)

		start := time.Now()
		c.Next()

		entry := Log(c).WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}

// Log returns a logrus entry tagged with the request id and, once
// authenticated, the analyst.
func Log(c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if id, ok := c.Get(KeyRequestID); ok {
		fields["request_id"] = id
	}
	if name, ok := c.Get(KeyUsername); ok {
		fields["analyst"] = name
	}
	return logrus.WithFields(fields)
}
