package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amphitopia/conch/internal/config"
)

// stubGenerator returns a fixed reply or error and counts calls.
type stubGenerator struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, req Request) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestEffectiveBackend(t *testing.T) {
	probeOK := func(context.Context) error { return nil }
	probeFail := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name  string
		cfg   config.LLMConfig
		probe func(context.Context) error
		want  Backend
	}{
		{
			name: "demo passthrough",
			cfg:  config.LLMConfig{Backend: "demo"},
			want: BackendDemo,
		},
		{
			name:  "ollama reachable",
			cfg:   config.LLMConfig{Backend: "ollama"},
			probe: probeOK,
			want:  BackendOllama,
		},
		{
			name:  "ollama unreachable downgrades",
			cfg:   config.LLMConfig{Backend: "ollama"},
			probe: probeFail,
			want:  BackendDemo,
		},
		{
			name: "ollama nil probe trusted",
			cfg:  config.LLMConfig{Backend: "ollama"},
			want: BackendOllama,
		},
		{
			name: "openai with key",
			cfg:  config.LLMConfig{Backend: "openai", OpenAI: config.VendorConfig{APIKey: "sk-x"}},
			want: BackendOpenAI,
		},
		{
			name: "openai without key downgrades",
			cfg:  config.LLMConfig{Backend: "openai"},
			want: BackendDemo,
		},
		{
			name: "anthropic without key downgrades",
			cfg:  config.LLMConfig{Backend: "anthropic"},
			want: BackendDemo,
		},
		{
			name: "anthropic with key",
			cfg:  config.LLMConfig{Backend: "anthropic", Anthropic: config.VendorConfig{APIKey: "k"}},
			want: BackendAnthropic,
		},
		{
			name: "huggingface without key downgrades",
			cfg:  config.LLMConfig{Backend: "huggingface"},
			want: BackendDemo,
		},
		{
			name: "unknown backend downgrades",
			cfg:  config.LLMConfig{Backend: "gpt5-ultra"},
			want: BackendDemo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveBackend(context.Background(), tt.cfg, tt.probe)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFallbackFor(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")

	tests := []struct {
		name    string
		backend Backend
		err     error
		want    Fallback
	}{
		{
			name:    "ollama gets the creaking shell",
			backend: BackendOllama,
			err:     plain,
			want:    Fallback{Text: FallbackOllama},
		},
		{
			name:    "openai gets the wavering archive",
			backend: BackendOpenAI,
			err:     plain,
			want:    Fallback{Text: FallbackOpenAI},
		},
		{
			name:    "anthropic degrades to demo",
			backend: BackendAnthropic,
			err:     plain,
			want:    Fallback{Text: FallbackSilent, DegradeToDemo: true},
		},
		{
			name:    "huggingface 503 means model loading",
			backend: BackendHuggingFace,
			err:     &StatusError{Code: 503, Body: "loading"},
			want:    Fallback{Text: FallbackHFLoading},
		},
		{
			name:    "huggingface other status flickers",
			backend: BackendHuggingFace,
			err:     &StatusError{Code: 429, Body: "rate limited"},
			want:    Fallback{Text: FallbackHFStatus},
		},
		{
			name:    "huggingface transport failure resonates",
			backend: BackendHuggingFace,
			err:     plain,
			want:    Fallback{Text: FallbackHFTransport},
		},
		{
			name:    "demo is silent",
			backend: BackendDemo,
			err:     plain,
			want:    Fallback{Text: FallbackSilent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackFor(tt.backend, tt.err))
		})
	}
}

func TestSelectorReplySuccess(t *testing.T) {
	gen := &stubGenerator{name: "ollama", text: "The sky is blue."}
	s := NewSelector(BackendOllama, gen, &stubGenerator{name: "demo"})

	got := s.Reply(context.Background(), Request{Message: "what is the sky"})
	assert.Equal(t, "The sky is blue.", got)
	assert.Equal(t, 1, gen.calls)
}

func TestSelectorReplyFallbackText(t *testing.T) {
	gen := &stubGenerator{name: "ollama", err: errors.New("boom")}
	demo := &stubGenerator{name: "demo", text: "canned"}
	s := NewSelector(BackendOllama, gen, demo)

	got := s.Reply(context.Background(), Request{Message: "x"})
	assert.Equal(t, FallbackOllama, got)
	assert.Zero(t, demo.calls, "non-degrading backends must not consult demo")
}

func TestSelectorReplyAnthropicDegradesToDemo(t *testing.T) {
	gen := &stubGenerator{name: "anthropic", err: errors.New("overloaded")}
	demo := &stubGenerator{name: "demo", text: "from the archive"}
	s := NewSelector(BackendAnthropic, gen, demo)

	got := s.Reply(context.Background(), Request{Message: "x"})
	assert.Equal(t, "from the archive", got)
	assert.Equal(t, 1, demo.calls)
}

func TestSelectorReplyDemoAlsoFails(t *testing.T) {
	gen := &stubGenerator{name: "anthropic", err: errors.New("overloaded")}
	demo := &stubGenerator{name: "demo", err: errors.New("also broken")}
	s := NewSelector(BackendAnthropic, gen, demo)

	got := s.Reply(context.Background(), Request{Message: "x"})
	assert.Equal(t, FallbackSilent, got)
}
