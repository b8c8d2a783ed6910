package narrative

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"google.golang.org/genai"

	"projectai/internal/shared/telemetry"
)

const defaultRetryDelay = 300 * time.Millisecond

type retrying struct {
	base  Client
	delay time.Duration
}

// WithRetry retries a transient provider failure once after delay. The caller's
// deadline still bounds both attempts.
func WithRetry(base Client, delay time.Duration) Client {
	if base == nil {
		return nil
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return retrying{base: base, delay: delay}
}

func (r retrying) Complete(ctx context.Context, req Request) (string, error) {
	text, err := r.base.Complete(ctx, req)
	if err == nil || ctx.Err() != nil || !shouldRetry(err) {
		return text, err
	}

	telemetry.Warn("narrative.retry", map[string]any{"attempt": 1, "error": err})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return r.base.Complete(ctx, req)
}

func shouldRetry(err error) bool {
	if errors.Is(err, ErrNotConfigured) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500 || apiErr.Code == 429
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "http status 429") || strings.Contains(msg, "server_error") {
		return true
	}
	for _, s := range []string{"timeout", "connection reset", "connection refused", "broken pipe", "unexpected eof"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
