// Package chat implements the conch's conversation pipeline.
//
// The engine receives user text from a front end, runs it through exit
// detection, the generation backend, and the response normalizer, then
// optionally synthesizes speech. Both front ends (console and HTTP) drive
// the same engine, so every reply obeys the same formatting guarantees.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amphitopia/conch/internal/audiostore"
	"github.com/amphitopia/conch/internal/generate"
	"github.com/amphitopia/conch/internal/persona"
	"github.com/amphitopia/conch/internal/reply"
	"github.com/amphitopia/conch/internal/tts"
)

// exitWords end a session without a generation call.
var exitWords = map[string]bool{
	"exit":    true,
	"quit":    true,
	"bye":     true,
	"goodbye": true,
}

// IsExit reports whether a message is a session-ending keyword.
func IsExit(message string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(message))]
}

// Result is one turn's outcome.
type Result struct {
	// Text is the normalized reply (or the scripted goodbye).
	Text string

	// AudioID references synthesized speech in the audio store; empty when
	// TTS is disabled or synthesis failed.
	AudioID string

	// IsGoodbye marks a session-ending reply.
	IsGoodbye bool
}

// Engine orchestrates one conversation turn at a time. It is safe for
// concurrent use: the selector is stateless per call and the audio store is
// concurrency-safe.
type Engine struct {
	persona  persona.Persona
	selector *generate.Selector
	synth    tts.Synthesizer // nil when TTS is disabled
	store    *audiostore.Store

	welcomeMu      sync.Mutex
	welcomeAudioID string
}

// NewEngine creates an engine. synth may be nil to disable speech synthesis.
func NewEngine(p persona.Persona, selector *generate.Selector, synth tts.Synthesizer, store *audiostore.Store) *Engine {
	return &Engine{
		persona:  p,
		selector: selector,
		synth:    synth,
		store:    store,
	}
}

// Persona returns the engine's character definition.
func (e *Engine) Persona() persona.Persona { return e.persona }

// Backend returns the effective generation backend.
func (e *Engine) Backend() generate.Backend { return e.selector.Backend() }

// SpeechEnabled reports whether replies get synthesized audio.
func (e *Engine) SpeechEnabled() bool { return e.synth != nil }

// Reply processes one user message. Exit keywords short-circuit to the
// goodbye text with no generation call and no audio; everything else is
// generated, normalized, and optionally synthesized.
func (e *Engine) Reply(ctx context.Context, message string) Result {
	if IsExit(message) {
		return Result{Text: e.persona.Goodbye, IsGoodbye: true}
	}

	start := time.Now()
	raw := e.selector.Reply(ctx, generate.Request{
		Message:      message,
		SystemPrompt: e.persona.SystemPrompt,
	})
	text := reply.Normalize(raw)
	slog.Debug("reply generated",
		"backend", e.selector.Backend(),
		"duration", time.Since(start),
		"text_length", len(text))

	return Result{Text: text, AudioID: e.synthesize(ctx, text)}
}

// Welcome returns the scripted welcome line. With TTS enabled the welcome
// audio is cached after the first successful synthesis and the same id is
// reused for every later call; a failed attempt is retried on the next call.
func (e *Engine) Welcome(ctx context.Context) Result {
	e.welcomeMu.Lock()
	defer e.welcomeMu.Unlock()

	if e.welcomeAudioID == "" {
		e.welcomeAudioID = e.synthesize(ctx, e.persona.Welcome)
		if e.welcomeAudioID != "" {
			slog.Info("welcome audio cached", "audio_id", e.welcomeAudioID)
		}
	}
	return Result{Text: e.persona.Welcome, AudioID: e.welcomeAudioID}
}

// Goodbye returns the scripted goodbye line with optional audio.
func (e *Engine) Goodbye(ctx context.Context) Result {
	return Result{
		Text:      e.persona.Goodbye,
		AudioID:   e.synthesize(ctx, e.persona.Goodbye),
		IsGoodbye: true,
	}
}

// AudioPath resolves an audio id to its file path.
func (e *Engine) AudioPath(id string) (string, bool) {
	return e.store.Get(id)
}

// synthesize renders text to speech and registers the file in the store.
// Failures mean "no audio" and are only logged.
func (e *Engine) synthesize(ctx context.Context, text string) string {
	if e.synth == nil || text == "" {
		return ""
	}
	path, err := e.synth.Synthesize(ctx, text)
	if err != nil {
		slog.Warn("speech synthesis failed, continuing without audio", "error", err)
		return ""
	}
	return e.store.Put(path)
}
