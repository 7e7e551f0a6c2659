// Package openai implements the Generator interface using OpenAI's Chat
// Completions API.
package openai

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

const chatURL = "https://api.openai.com/v1/chat/completions"

// Generator talks to the OpenAI chat API.
type Generator struct {
	apiKey  string
	model   string
	params  generate.Params
	baseURL string
	client  *http.Client
}

// New creates an OpenAI generator from config.
func New(cfg config.VendorConfig, params generate.Params) *Generator {
	return &Generator{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		params:  params,
		baseURL: chatURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the backend identifier.
func (g *Generator) Name() string { return string(generate.BackendOpenAI) }

// Generate sends the system prompt and user message as separate chat roles.
func (g *Generator) Generate(ctx context.Context, req generate.Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.Message},
		},
		MaxTokens:   g.params.MaxTokens,
		Temperature: g.params.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshalling chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("chat failed (status %d): %s", resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat API")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	slog.Debug("openai generation complete", "model", g.model, "text_length", len(text))
	return text, nil
}

// --- API types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
