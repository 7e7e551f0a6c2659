package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amphitopia/conch/internal/config"
	"github.com/amphitopia/conch/internal/generate"
)

func newTestGenerator(baseURL string) *Generator {
	g := New(config.VendorConfig{APIKey: "test-key", Model: "claude-3-haiku-20240307"},
		generate.Params{Temperature: 0.8, MaxTokens: 150})
	g.baseURL = baseURL
	return g
}

func TestGenerate(t *testing.T) {
	var got messagesRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"The sky "},{"type":"text","text":"is blue. "}]}`))
	}))
	defer srv.Close()

	g := newTestGenerator(srv.URL)
	text, err := g.Generate(context.Background(), generate.Request{
		Message:      "what is the sky",
		SystemPrompt: "You are the conch.",
	})
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue.", text, "text blocks are concatenated")

	assert.Equal(t, "claude-3-haiku-20240307", got.Model)
	assert.Equal(t, "You are the conch.", got.System, "system prompt travels as a top-level field")
	require.Len(t, got.Messages, 1)
	assert.Equal(t, message{Role: "user", Content: "what is the sky"}, got.Messages[0])
	assert.Equal(t, 150, got.MaxTokens)
	assert.Equal(t, 0.8, got.Temperature)
}

func TestGenerateIgnoresNonTextBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"tool_use","text":"nope"},{"type":"text","text":"Land is solid water."}]}`))
	}))
	defer srv.Close()

	g := newTestGenerator(srv.URL)
	text, err := g.Generate(context.Background(), generate.Request{Message: "what is land"})
	require.NoError(t, err)
	assert.Equal(t, "Land is solid water.", text)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"overloaded_error"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := newTestGenerator(srv.URL)
	_, err := g.Generate(context.Background(), generate.Request{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
