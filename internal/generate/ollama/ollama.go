// Package ollama implements the Generator interface against a local Ollama
// server (or any endpoint speaking Ollama's /api/generate protocol).
package ollama

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

// Generator talks to a local inference server.
type Generator struct {
	endpoint string
	model    string
	params   generate.Params
	client   *http.Client
}

// New creates an Ollama generator from config.
func New(cfg config.OllamaConfig, params generate.Params) *Generator {
	return &Generator{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		model:    cfg.Model,
		params:   params,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the backend identifier.
func (g *Generator) Name() string { return string(generate.BackendOllama) }

// Probe checks that the server is up by listing its installed models.
func (g *Generator) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("creating probe request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("probing ollama: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama not responding (status %d)", resp.StatusCode)
	}
	return nil
}

// Generate sends the persona prompt and user message in the completion
// template Ollama expects for raw prompts.
func (g *Generator) Generate(ctx context.Context, req generate.Request) (string, error) {
	prompt := fmt.Sprintf("%s\n\nHuman: %s\n\nAssistant:", req.SystemPrompt, req.Message)

	body, err := json.Marshal(map[string]any{
		"model":  g.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": g.params.Temperature,
			"num_predict": g.params.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("ollama failed (status %d): %s", resp.StatusCode, respBody)
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}

	slog.Debug("ollama generation complete", "model", g.model, "text_length", len(result.Response))
	return strings.TrimSpace(result.Response), nil
}
