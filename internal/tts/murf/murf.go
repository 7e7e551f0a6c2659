// Package murf implements the tts.Synthesizer interface against the Murf
// voice API.
//
// Synthesis is a two-step exchange: the generate call returns a URL to the
// rendered audio, which is then downloaded and staged in a temp file. Murf
// can take tens of seconds on longer text, so the client carries a much
// larger timeout than the rest of the system.
package murf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/amphitopia/conch/internal/config"
	"github.com/amphitopia/conch/internal/tts"
)

const generateURL = "https://api.murf.ai/v1/speech/generate"

// Client synthesizes speech through the Murf API.
type Client struct {
	apiKey  string
	voiceID string
	style   string
	model   string
	baseURL string
	client  *http.Client
}

// New creates a Murf client from config.
func New(cfg config.MurfConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		voiceID: cfg.VoiceID,
		style:   cfg.Style,
		model:   cfg.Model,
		baseURL: generateURL,
		// Generation regularly runs 30-60s on multi-sentence text.
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Synthesize renders text to speech and returns the path of a temp MP3 file.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	clean := tts.CleanForSpeech(text)
	if clean == "" {
		return "", fmt.Errorf("nothing to synthesize")
	}

	body, err := json.Marshal(generateRequest{
		Text:       clean,
		VoiceID:    c.voiceID,
		Style:      c.style,
		Format:     "MP3",
		SampleRate: 44100,
	})
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("speech generation failed (status %d): %s", resp.StatusCode, respBody)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}
	if genResp.AudioFile == "" {
		return "", fmt.Errorf("no audio URL in generation response")
	}

	path, err := c.download(ctx, genResp.AudioFile)
	if err != nil {
		return "", err
	}

	slog.Debug("speech synthesized", "voice", c.voiceID, "text_length", len(clean), "path", path)
	return path, nil
}

// download fetches the rendered audio URL into a temp file.
func (c *Client) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading audio: status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "conch-*.mp3")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing audio file: %w", err)
	}

	return f.Name(), nil
}

// Close is a no-op — connections are per-request.
func (c *Client) Close() error { return nil }

// --- API types ---

type generateRequest struct {
	Text       string  `json:"text"`
	VoiceID    string  `json:"voiceId"`
	Style      string  `json:"style,omitempty"`
	Format     string  `json:"format"`
	SampleRate float64 `json:"sampleRate"`
}

type generateResponse struct {
	AudioFile string `json:"audioFile"`
}
