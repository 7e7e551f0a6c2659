package whisper

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

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "base", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))
		assert.Equal(t, "json", r.FormValue("response_format"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "audio.wav", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "wav-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  what is the sky \n"}`))
	}))
	defer srv.Close()

	r := New(config.WhisperConfig{Endpoint: srv.URL, Model: "base"})
	text, err := r.Transcribe(context.Background(), []byte("wav-bytes"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "what is the sky", text)
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := New(config.WhisperConfig{Endpoint: srv.URL})
	_, err := r.Transcribe(context.Background(), []byte("x"), "audio/wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestExtFromContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want string
	}{
		{"audio/wav", ".wav"},
		{"audio/mpeg", ".mp3"},
		{"audio/ogg", ".ogg"},
		{"audio/flac", ".flac"},
		{"audio/webm", ".webm"},
		{"application/octet-stream", ".wav"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extFromContentType(tt.ct), tt.ct)
	}
}
