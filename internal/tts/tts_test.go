package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanForSpeech(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text untouched", "The archive remembers.", "The archive remembers."},
		{"markdown stripped", "*bold* _em_ `code`", "bold em code"},
		{"leading ellipsis trimmed", "...the conch remains silent", "the conch remains silent"},
		{"trailing ellipsis trimmed", "the connection wavers...", "the connection wavers"},
		{"inner ellipsis kept", "the light... flickers", "the light... flickers"},
		{"stacked edge ellipses trimmed", "......deep below......", "deep below"},
		{"lines joined", "first line\n\nsecond line\n", "first line second line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanForSpeech(tt.in))
		})
	}
}
