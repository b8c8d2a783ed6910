package narrative

import (
	"context"
	"errors"
	"testing"
)

func TestSystemMessage(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{name: "system only", req: Request{System: "persona"}, want: "persona"},
		{name: "context only", req: Request{Context: "dados"}, want: "Contexto: dados"},
		{name: "both", req: Request{System: " persona ", Context: "dados"}, want: "persona\n\nContexto: dados"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.SystemMessage(); got != tt.want {
				t.Fatalf("SystemMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaceholderClient(t *testing.T) {
	_, err := PlaceholderClient{}.Complete(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClientFunc(t *testing.T) {
	c := ClientFunc(func(_ context.Context, req Request) (string, error) {
		return "echo:" + req.Prompt, nil
	})
	got, err := c.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil || got != "echo:hi" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
}
