// Package anthropic implements the Generator interface using Anthropic's
// Messages API. The system prompt travels as a top-level field rather than a
// message role, per that API's convention.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amphitopia/conch/internal/config"
	"github.com/amphitopia/conch/internal/generate"
)

const messagesURL = "https://api.anthropic.com/v1/messages"

// Generator talks to the Anthropic messages API.
type Generator struct {
	apiKey  string
	model   string
	params  generate.Params
	baseURL string
	client  *http.Client
}

// New creates an Anthropic generator from config.
func New(cfg config.VendorConfig, params generate.Params) *Generator {
	return &Generator{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		params:  params,
		baseURL: messagesURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the backend identifier.
func (g *Generator) Name() string { return string(generate.BackendAnthropic) }

// Generate sends a single-turn messages request.
func (g *Generator) Generate(ctx context.Context, req generate.Request) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:  g.model,
		System: req.SystemPrompt,
		Messages: []message{
			{Role: "user", Content: req.Message},
		},
		MaxTokens:   g.params.MaxTokens,
		Temperature: g.params.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("anthropic failed (status %d): %s", resp.StatusCode, respBody)
	}

	var msgResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	var text string
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	text = strings.TrimSpace(text)

	slog.Debug("anthropic generation complete", "model", g.model, "text_length", len(text))
	return text, nil
}

// --- API types ---

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}
