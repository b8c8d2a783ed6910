package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"projectai/internal/narrative"
)

// Client implements narrative.Client on the Gemini API.
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient builds a Gemini client. An empty apiKey lets genai read
// GEMINI_API_KEY / GOOGLE_API_KEY from the environment.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{cli: cli, model: model}, nil
}

// Complete sends the prompt with the merged system instruction.
func (c *Client) Complete(ctx context.Context, in narrative.Request) (string, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: in.Prompt}}}},
		generateConfig(in),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return text, nil
}

func generateConfig(in narrative.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if sys := in.SystemMessage(); sys != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: sys}}}
	}
	if in.Temperature > 0 {
		temp := in.Temperature
		cfg.Temperature = &temp
	}
	if in.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(in.MaxTokens)
	}
	return cfg
}

var _ narrative.Client = (*Client)(nil)
