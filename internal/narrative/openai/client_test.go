package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"projectai/internal/narrative"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o-mini", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := NewClient("sk-test", " "); err == nil {
		t.Fatalf("expected missing model error")
	}
}

func TestCompleteSendsSystemAndUser(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Análise pronta. "}}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o-mini", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	text, err := c.Complete(context.Background(), narrative.Request{
		System:      "persona",
		Context:     "dados",
		Prompt:      "analise",
		MaxTokens:   800,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "Análise pronta." {
		t.Fatalf("unexpected text %q", text)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "analise" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[0].Content, "Contexto: dados") {
		t.Fatalf("context missing from system message: %q", got.Messages[0].Content)
	}
	if got.MaxTokens != 800 || got.Temperature == nil || *got.Temperature != 0.7 {
		t.Fatalf("unexpected sampling params: max=%d temp=%v", got.MaxTokens, got.Temperature)
	}
}

func TestCompleteSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	c, _ := NewClient("sk-test", "gpt-4o-mini", WithBaseURL(srv.URL))
	_, err := c.Complete(context.Background(), narrative.Request{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestCompleteRejectsEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"   "}}]}`))
	}))
	defer srv.Close()

	c, _ := NewClient("sk-test", "gpt-4o-mini", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), narrative.Request{Prompt: "x"}); err == nil {
		t.Fatalf("expected empty content error")
	}
}
