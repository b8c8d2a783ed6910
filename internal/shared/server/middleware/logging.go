package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"projectai/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	SessionIDKey      = "sessionId"
	PredictionKey     = "predictionProbability"
	NarrativeStateKey = "narrativeStatus"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []string{SessionIDKey, PredictionKey, NarrativeStateKey} {
			if v, ok := c.Get(key); ok {
				fields[logFieldName(key)] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}

func logFieldName(key string) string {
	switch key {
	case SessionIDKey:
		return "session_id"
	case PredictionKey:
		return "success_probability"
	case NarrativeStateKey:
		return "narrative_status"
	default:
		return key
	}
}
