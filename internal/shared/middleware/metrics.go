package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"bookjournal-backend/internal/infrastructure/metrics"
)

// Metrics ghi request count + latency theo route template (c.FullPath)
func Metrics(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		recorder.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
