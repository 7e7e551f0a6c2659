// Package openai implements the stt.Recognizer interface using OpenAI's
// hosted Audio Transcription API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/amphitopia/conch/internal/config"
)

const transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// Recognizer transcribes audio through the OpenAI API.
type Recognizer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New creates an OpenAI recognizer from config.
func New(cfg config.VendorConfig) *Recognizer {
	return &Recognizer{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: transcriptionURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the backend identifier.
func (r *Recognizer) Name() string { return "openai" }

// Transcribe uploads the audio and returns the recognized text.
func (r *Recognizer) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(audio)); err != nil {
		return "", fmt.Errorf("writing audio: %w", err)
	}
	_ = writer.WriteField("model", r.model)
	_ = writer.WriteField("language", "en")
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("transcription failed (status %d): %s", resp.StatusCode, respBody)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding transcription: %w", err)
	}

	text := strings.TrimSpace(result.Text)
	slog.Debug("openai transcription complete", "text_length", len(text))
	return text, nil
}

// Close is a no-op for the OpenAI recognizer.
func (r *Recognizer) Close() error { return nil }
