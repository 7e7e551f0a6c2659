// Package huggingface implements the Generator interface using the
// HuggingFace Inference API with a Mistral-style instruct template.
//
// Non-success statuses are reported as *generate.StatusError so the fallback
// policy can tell a model that is still loading (503) from a hard failure.
package huggingface

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

const inferenceBaseURL = "https://api-inference.huggingface.co/models/"

// Generator talks to the HuggingFace Inference API.
type Generator struct {
	apiKey string
	model  string
	params generate.Params
	client *http.Client
}

// New creates a HuggingFace generator from config.
func New(cfg config.VendorConfig, params generate.Params) *Generator {
	return &Generator{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		params: params,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the backend identifier.
func (g *Generator) Name() string { return string(generate.BackendHuggingFace) }

// Generate wraps the prompts in the instruct template and posts them to the
// model's inference endpoint.
func (g *Generator) Generate(ctx context.Context, req generate.Request) (string, error) {
	prompt := fmt.Sprintf("<s>[INST] %s\n\n%s [/INST]", req.SystemPrompt, req.Message)

	body, err := json.Marshal(map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens":   g.params.MaxTokens,
			"temperature":      g.params.Temperature,
			"top_p":            g.params.TopP,
			"return_full_text": false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, inferenceBaseURL+g.model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &generate.StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	text := extractGeneratedText(data)
	if text == "" {
		return "", fmt.Errorf("empty response from inference API")
	}

	slog.Debug("huggingface generation complete", "model", g.model, "text_length", len(text))
	return text, nil
}

// extractGeneratedText handles both response shapes the API produces:
// a list of {"generated_text": ...} objects or a single object.
func extractGeneratedText(data []byte) string {
	var list []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0].GeneratedText)
	}

	var single struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(data, &single); err == nil {
		return strings.TrimSpace(single.GeneratedText)
	}
	return ""
}
