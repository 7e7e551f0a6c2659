// Package stt converts spoken input to text.
//
// Capture is fixed-duration: the microphone records for a configured number
// of seconds, the samples are staged as WAV, and a Recognizer backend turns
// them into text. Every failure along the way means "no text" — voice input
// is a convenience, never a hard dependency.
package stt

import (
	"context"
	"log/slog"
	"time"
)

// Recognizer converts captured audio to text.
type Recognizer interface {
	// Name returns the backend identifier (e.g. "whisper", "openai").
	Name() string

	// Transcribe converts audio bytes to text. contentType is the MIME type
	// of the audio (e.g. "audio/wav").
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)

	// Close releases any resources held by the recognizer.
	Close() error
}

// Listener records from the microphone and transcribes the result.
type Listener struct {
	recognizer Recognizer
	capture    func(d time.Duration) ([]byte, error)
}

// NewListener creates a listener over the given recognizer using the default
// microphone capture.
func NewListener(rec Recognizer) *Listener {
	return &Listener{recognizer: rec, capture: Capture}
}

// ListenAndTranscribe records for the given duration and returns the
// transcribed text. The second return is false on silence, unintelligible
// audio, or any capture/transport failure — the caller should fall back to
// typed input, not report an error.
func (l *Listener) ListenAndTranscribe(ctx context.Context, d time.Duration) (string, bool) {
	audio, err := l.capture(d)
	if err != nil {
		slog.Warn("audio capture failed", "error", err)
		return "", false
	}

	text, err := l.recognizer.Transcribe(ctx, audio, "audio/wav")
	if err != nil {
		slog.Warn("transcription failed", "backend", l.recognizer.Name(), "error", err)
		return "", false
	}
	if text == "" {
		return "", false
	}
	return text, true
}
