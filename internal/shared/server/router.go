package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projectai/internal/analysis"
	"projectai/internal/directory"
	"projectai/internal/intake"
	"projectai/internal/prediction"
	"projectai/internal/services/health"
	"projectai/internal/shared/config"
	"projectai/internal/shared/metrics"
	"projectai/internal/shared/server/middleware"
	"projectai/internal/shared/server/respond"
)

const serviceVersion = "1.0.0"

// RouterDeps lists the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	PredictionHandler *prediction.Handler
	AnalysisHandler   *analysis.Handler
	DirectoryHandler  *directory.Handler
	IntakeHandler     *intake.Handler
	RateLimiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"message": "Project Success Prediction API",
			"status":  "running",
			"version": serviceVersion,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, health.Report{Status: health.StatusUnhealthy})
			return
		}
		respond.OK(c, deps.Health.Status(c.Request.Context()))
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.PredictionHandler != nil {
		deps.PredictionHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		var mw []gin.HandlerFunc
		if n := deps.Config.AnalyzeRatePerMin; n > 0 {
			mw = append(mw, middleware.RateLimit(middleware.RateLimitConfig{
				Rules:        map[string]middleware.RateLimitRule{"ANALYZE": middleware.PerMinute(n)},
				DefaultGroup: "ANALYZE",
				KeyFor:       func(c *gin.Context) string { return c.ClientIP() },
				Limiter:      deps.RateLimiter,
			}))
		}
		deps.AnalysisHandler.RegisterRoutes(api, mw...)
	}
	if deps.DirectoryHandler != nil {
		deps.DirectoryHandler.RegisterRoutes(api)
	}
	if deps.IntakeHandler != nil {
		deps.IntakeHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
