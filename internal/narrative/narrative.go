// Package narrative abstracts the external text-generation collaborator used
// for expert analyses and conversational prompts.
package narrative

import (
	"context"
	"errors"
	"strings"
)

// ErrNotConfigured is returned when no provider is configured.
var ErrNotConfigured = errors.New("narrative provider not configured")

// Request is one completion. Context is prepended to the system message.
type Request struct {
	System      string
	Context     string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// SystemMessage merges System and Context into the system instruction.
func (r Request) SystemMessage() string {
	sys := strings.TrimSpace(r.System)
	ctx := strings.TrimSpace(r.Context)
	switch {
	case ctx == "":
		return sys
	case sys == "":
		return "Contexto: " + ctx
	default:
		return sys + "\n\nContexto: " + ctx
	}
}

// Client generates free text. Failures are returned, never hidden.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}
