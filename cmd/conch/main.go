// Conch is a themed roleplay chatbot: an ancient conch shell that answers
// questions from a drowned undersea archive, in character, with optional
// speech synthesis and voice input.
//
// Usage:
//
//	conch chat                          interactive console session
//	conch serve                         HTTP API + web UI
//	conch chat --config conch.yaml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amphitopia/conch/internal/audiostore"
	"github.com/amphitopia/conch/internal/chat"
	"github.com/amphitopia/conch/internal/config"
	"github.com/amphitopia/conch/internal/console"
	"github.com/amphitopia/conch/internal/generate"
	anthropicgen "github.com/amphitopia/conch/internal/generate/anthropic"
	"github.com/amphitopia/conch/internal/generate/demo"
	hfgen "github.com/amphitopia/conch/internal/generate/huggingface"
	ollamagen "github.com/amphitopia/conch/internal/generate/ollama"
	openaigen "github.com/amphitopia/conch/internal/generate/openai"
	"github.com/amphitopia/conch/internal/persona"
	"github.com/amphitopia/conch/internal/server"
	"github.com/amphitopia/conch/internal/stt"
	openaistt "github.com/amphitopia/conch/internal/stt/openai"
	"github.com/amphitopia/conch/internal/stt/whisper"
	"github.com/amphitopia/conch/internal/tts"
	"github.com/amphitopia/conch/internal/tts/murf"
)

// version is set at build time via ldflags.
var version = "dev"

var configFile string

func main() {
	root := &cobra.Command{
		Use:           "conch",
		Short:         "themed roleplay chatbot with optional voice",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (e.g. configs/conch.yaml)")

	root.AddCommand(chatCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		slog.Error("conch failed", "error", err)
		os.Exit(1)
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "start an interactive console session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, engine, err := buildEngine(ctx)
			if err != nil {
				return err
			}

			opts := console.Options{
				ListenSeconds: cfg.STT.ListenSeconds,
				TypeDelay:     console.DefaultTypeDelay,
			}
			if cfg.STT.Enabled {
				rec, err := buildRecognizer(cfg.STT)
				if err != nil {
					slog.Warn("speech recognition unavailable", "error", err)
				} else {
					defer rec.Close()
					opts.Listener = stt.NewListener(rec)
				}
			}

			return console.New(engine, opts).Run(ctx)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API and web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, engine, err := buildEngine(ctx)
			if err != nil {
				return err
			}

			slog.Info("conch serving",
				"port", cfg.Server.Port,
				"backend", engine.Backend(),
				"speech", engine.SpeechEnabled())
			return server.New(cfg.Server.Port, engine).ListenAndServe(ctx)
		},
	}
}

// buildEngine loads configuration and assembles the chat engine shared by
// both front ends.
func buildEngine(ctx context.Context) (*config.Config, *chat.Engine, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	config.SetupLogging(cfg.Logging)
	slog.Info("conch starting", "version", version)

	params := generate.Params{
		Temperature: cfg.Generation.Temperature,
		TopP:        cfg.Generation.TopP,
		MaxTokens:   cfg.Generation.MaxTokens,
	}

	ollamaGen := ollamagen.New(cfg.LLM.Ollama, params)
	backend := generate.EffectiveBackend(ctx, cfg.LLM, ollamaGen.Probe)

	var gen generate.Generator
	switch backend {
	case generate.BackendOllama:
		gen = ollamaGen
	case generate.BackendOpenAI:
		gen = openaigen.New(cfg.LLM.OpenAI, params)
	case generate.BackendAnthropic:
		gen = anthropicgen.New(cfg.LLM.Anthropic, params)
	case generate.BackendHuggingFace:
		gen = hfgen.New(cfg.LLM.HuggingFace, params)
	default:
		gen = demo.New()
	}
	slog.Info("generation backend selected", "backend", backend)

	selector := generate.NewSelector(backend, gen, demo.New())

	var synth tts.Synthesizer
	if cfg.TTS.Enabled {
		if cfg.TTS.Murf.APIKey == "" {
			slog.Warn("tts enabled but no murf api key set, continuing without speech")
		} else {
			synth = murf.New(cfg.TTS.Murf)
			slog.Info("speech synthesis enabled", "voice", cfg.TTS.Murf.VoiceID)
		}
	}

	engine := chat.NewEngine(persona.TheConch(), selector, synth, audiostore.New())
	return cfg, engine, nil
}

// buildRecognizer picks the speech-to-text backend from config.
func buildRecognizer(cfg config.STTConfig) (stt.Recognizer, error) {
	switch cfg.Backend {
	case "whisper":
		return whisper.New(cfg.Whisper), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("stt backend %q requires an api key", cfg.Backend)
		}
		return openaistt.New(cfg.OpenAI), nil
	default:
		return nil, fmt.Errorf("unknown stt backend %q", cfg.Backend)
	}
}
