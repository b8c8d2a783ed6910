package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectai_predictions_total",
			Help: "Predictions served, by predicted verdict.",
		},
		[]string{"verdict"},
	)

	predictionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectai_prediction_failures_total",
			Help: "Prediction requests that failed, by error code.",
		},
		[]string{"code"},
	)

	predictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "projectai_prediction_duration_seconds",
			Help:    "Time spent encoding, scoring and advising one project.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	narrativeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectai_narratives_total",
			Help: "Hybrid analyses, by narrative status (combined, ml_only, cached).",
		},
		[]string{"status"},
	)

	narrativeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "projectai_narrative_duration_seconds",
			Help:    "Latency of narrative collaborator calls.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	intakeAnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectai_intake_answers_total",
			Help: "Intake answers, by field and outcome (accepted, rejected).",
		},
		[]string{"field", "outcome"},
	)

	intakeSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "projectai_intake_sessions_active",
			Help: "Intake sessions currently held by the HTTP session store.",
		},
	)
)

// ObservePrediction records a served prediction.
func ObservePrediction(success bool, elapsed time.Duration) {
	verdict := "risk"
	if success {
		verdict = "success"
	}
	predictionsTotal.WithLabelValues(verdict).Inc()
	predictionDuration.Observe(elapsed.Seconds())
}

// IncPredictionFailure records a failed prediction by error code.
func IncPredictionFailure(code string) {
	predictionFailuresTotal.WithLabelValues(code).Inc()
}

// ObserveNarrative records a narrative outcome. elapsed is ignored for cache hits.
func ObserveNarrative(status string, elapsed time.Duration) {
	narrativeTotal.WithLabelValues(status).Inc()
	if status != "cached" {
		narrativeDuration.Observe(elapsed.Seconds())
	}
}

// IncIntakeAnswer records an intake answer outcome.
func IncIntakeAnswer(field string, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	intakeAnswersTotal.WithLabelValues(field, outcome).Inc()
}

// SetIntakeSessions sets the number of live intake sessions.
func SetIntakeSessions(n int) {
	intakeSessionsActive.Set(float64(n))
}

// Handler exposes the default Prometheus registry.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusMethodNotAllowed)
			return
		}
		h.ServeHTTP(c.Writer, c.Request)
	}
}
