package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amphitopia/conch/internal/config"
)

func newTestRecognizer(baseURL string) *Recognizer {
	r := New(config.VendorConfig{APIKey: "sk-test", Model: "whisper-1"})
	r.baseURL = baseURL
	return r
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "audio.wav", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "wav-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" what is the sun "}`))
	}))
	defer srv.Close()

	rec := newTestRecognizer(srv.URL)
	text, err := rec.Transcribe(context.Background(), []byte("wav-bytes"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "what is the sun", text)
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	rec := newTestRecognizer(srv.URL)
	_, err := rec.Transcribe(context.Background(), []byte("x"), "audio/wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
