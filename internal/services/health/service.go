package health

import (
	"context"
	"time"
)

// Status values reported by the health endpoint.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ModelChecker reports whether the classifier is loaded.
type ModelChecker interface {
	Ready() bool
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Report is the health payload.
type Report struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Database    string `json:"database,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	Model ModelChecker
	DB    Pinger
}

// NewService constructs a new health service. db may be nil.
func NewService(model ModelChecker, db Pinger) *Service {
	return &Service{Model: model, DB: db}
}

// Status is healthy only when the model is loaded and, if configured, the
// database answers a ping.
func (s *Service) Status(ctx context.Context) Report {
	r := Report{ModelLoaded: s.Model != nil && s.Model.Ready()}
	healthy := r.ModelLoaded
	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			r.Database = "unreachable"
			healthy = false
		} else {
			r.Database = "ok"
		}
	}
	r.Status = StatusUnhealthy
	if healthy {
		r.Status = StatusHealthy
	}
	return r
}
