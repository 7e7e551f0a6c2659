package openai

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
	g := New(config.VendorConfig{APIKey: "sk-test", Model: "gpt-3.5-turbo"},
		generate.Params{Temperature: 0.8, MaxTokens: 150})
	g.baseURL = baseURL
	return g
}

func TestGenerate(t *testing.T) {
	var got chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  The sky is blue. \n"}}]}`))
	}))
	defer srv.Close()

	g := newTestGenerator(srv.URL)
	text, err := g.Generate(context.Background(), generate.Request{
		Message:      "what is the sky",
		SystemPrompt: "You are the conch.",
	})
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue.", text)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "You are the conch."}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "what is the sky"}, got.Messages[1])
	assert.Equal(t, 150, got.MaxTokens)
	assert.Equal(t, 0.8, got.Temperature)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := newTestGenerator(srv.URL)
	_, err := g.Generate(context.Background(), generate.Request{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g := newTestGenerator(srv.URL)
	_, err := g.Generate(context.Background(), generate.Request{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
