package generate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/amphitopia/conch/internal/config"
)

// In-character fallback lines, one per backend. The user never learns that a
// model call failed: the conch just sounds a little distant for one turn.
const (
	// FallbackOllama is returned when the local inference server fails
	// mid-session.
	FallbackOllama = "*the Conch's shell creaks softly, as if stirred by ancient memories* I fear my knowledge of the surface world grows dimmer with each passing generation. But I shall endeavor to recall what I can, in the hopes of rekindling your curiosity about the world your ancestors once inhabited."

	// FallbackOpenAI is returned when the OpenAI call fails.
	FallbackOpenAI = "...the connection to the conch's archive wavers..."

	// FallbackHFLoading is returned when the hosted model is still loading.
	FallbackHFLoading = "The conch is awakening... The model is loading. Please try again in a moment."

	// FallbackHFStatus is returned on other non-success inference statuses.
	FallbackHFStatus = "...the conch's light flickers..."

	// FallbackHFTransport is returned when the inference request itself fails.
	FallbackHFTransport = "*the Conch's voice resonates with a pensive tone* The memories of the surface world grow distant, as the currents of Amphitopia flow ever onward. Tell me, young one, what do you know of the lands above the waves? I sense you harbor a curiosity about the world your ancestors once inhabited."

	// FallbackSilent is the last resort when no backend can answer.
	FallbackSilent = "...the conch remains silent..."
)

// Fallback describes how the selector handles a failed generation call.
type Fallback struct {
	// Text is the in-character reply to surface.
	Text string

	// DegradeToDemo routes this one call to the demo table instead of a
	// static line. Text is still used if the demo responder is absent.
	DegradeToDemo bool
}

// FallbackFor maps a failed call to its per-backend fallback. The policy is
// deliberately asymmetric: Anthropic failures degrade to the demo table,
// everything else gets a fixed line.
func FallbackFor(backend Backend, err error) Fallback {
	switch backend {
	case BackendOllama:
		return Fallback{Text: FallbackOllama}
	case BackendOpenAI:
		return Fallback{Text: FallbackOpenAI}
	case BackendAnthropic:
		return Fallback{Text: FallbackSilent, DegradeToDemo: true}
	case BackendHuggingFace:
		var se *StatusError
		if errors.As(err, &se) {
			if se.Code == http.StatusServiceUnavailable {
				return Fallback{Text: FallbackHFLoading}
			}
			return Fallback{Text: FallbackHFStatus}
		}
		return Fallback{Text: FallbackHFTransport}
	default:
		return Fallback{Text: FallbackSilent}
	}
}

// EffectiveBackend decides which backend will actually serve requests. It is
// called once at startup; a downgrade is permanent for the process lifetime.
//
// Unknown kinds and vendor backends without credentials downgrade to demo
// with a logged warning, never an error — the persona must come up even on a
// box with no configuration at all. probe is the ollama liveness check and
// is only consulted for that backend; pass nil to skip it.
func EffectiveBackend(ctx context.Context, cfg config.LLMConfig, probe func(context.Context) error) Backend {
	switch Backend(cfg.Backend) {
	case BackendDemo:
		return BackendDemo

	case BackendOllama:
		if probe != nil {
			if err := probe(ctx); err != nil {
				slog.Warn("ollama unreachable, falling back to demo responses", "error", err)
				return BackendDemo
			}
		}
		return BackendOllama

	case BackendOpenAI:
		if cfg.OpenAI.APIKey == "" {
			slog.Warn("openai api key not set, falling back to demo responses")
			return BackendDemo
		}
		return BackendOpenAI

	case BackendAnthropic:
		if cfg.Anthropic.APIKey == "" {
			slog.Warn("anthropic api key not set, falling back to demo responses")
			return BackendDemo
		}
		return BackendAnthropic

	case BackendHuggingFace:
		if cfg.HuggingFace.APIKey == "" {
			slog.Warn("huggingface api key not set, falling back to demo responses")
			return BackendDemo
		}
		return BackendHuggingFace

	default:
		slog.Warn("unknown llm backend, falling back to demo responses", "backend", cfg.Backend)
		return BackendDemo
	}
}

// Selector wraps the resolved backend and guarantees a reply on every call.
// It is stateless per call and safe for concurrent use.
type Selector struct {
	backend   Backend
	generator Generator
	demo      Generator
}

// NewSelector creates a selector over the resolved generator. demo serves
// the per-call degrade path and may equal generator when the effective
// backend is already demo.
func NewSelector(backend Backend, generator, demo Generator) *Selector {
	return &Selector{backend: backend, generator: generator, demo: demo}
}

// Backend returns the effective backend kind.
func (s *Selector) Backend() Backend { return s.backend }

// Reply generates text for the request. It never returns an error: every
// failure is converted to in-character fallback text per FallbackFor.
func (s *Selector) Reply(ctx context.Context, req Request) string {
	text, err := s.generator.Generate(ctx, req)
	if err == nil {
		return text
	}

	slog.Warn("generation failed", "backend", s.backend, "error", err)

	fb := FallbackFor(s.backend, err)
	if fb.DegradeToDemo && s.demo != nil {
		if text, derr := s.demo.Generate(ctx, req); derr == nil {
			return text
		}
	}
	return fb.Text
}
