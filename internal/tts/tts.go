// Package tts defines the interface for speech synthesis.
//
// The conch speaks through a hosted voice API. Synthesis is always optional:
// every failure, including timeout, means "no audio" and the caller carries
// on with text alone.
package tts

import (
	"context"
	"strings"
)

// Synthesizer converts text to a playable audio file.
type Synthesizer interface {
	// Synthesize generates speech for the text and returns the path of a
	// temporary audio file holding it.
	Synthesize(ctx context.Context, text string) (string, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}

// CleanForSpeech prepares display text for the voice API: markdown
// punctuation is dropped, ellipses are trimmed from the ends only (pauses in
// the middle of a sentence are the model's business), and multi-line text is
// joined so the voice does not pause at line breaks.
func CleanForSpeech(text string) string {
	cleaned := strings.NewReplacer("*", "", "_", "", "`", "").Replace(text)

	cleaned = strings.TrimSpace(cleaned)
	for strings.HasPrefix(cleaned, "...") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "..."))
	}
	for strings.HasSuffix(cleaned, "...") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "..."))
	}

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}
