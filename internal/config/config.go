// Package config handles loading and validating the conch configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the conch binaries.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Generation GenerationConfig `mapstructure:"generation"`
	TTS        TTSConfig        `mapstructure:"tts"`
	STT        STTConfig        `mapstructure:"stt"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the HTTP front end settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LLMConfig selects and configures the text-generation backend.
type LLMConfig struct {
	// Backend is one of "demo", "ollama", "openai", "anthropic", "huggingface".
	Backend     string       `mapstructure:"backend"`
	Ollama      OllamaConfig `mapstructure:"ollama"`
	OpenAI      VendorConfig `mapstructure:"openai"`
	Anthropic   VendorConfig `mapstructure:"anthropic"`
	HuggingFace VendorConfig `mapstructure:"huggingface"`
}

// OllamaConfig holds local inference server settings.
type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// VendorConfig holds hosted API settings shared by the vendor backends.
type VendorConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// GenerationConfig holds sampling parameters applied to every generation call.
type GenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	// MaxRetries is accepted for compatibility with older deployments but a
	// generation call is only ever attempted once; failures fall back to
	// in-character text instead of being retried.
	MaxRetries int `mapstructure:"max_retries"`
}

// TTSConfig selects and configures the speech synthesis backend.
type TTSConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	Murf    MurfConfig `mapstructure:"murf"`
}

// MurfConfig holds Murf voice API settings.
type MurfConfig struct {
	APIKey  string `mapstructure:"api_key"`
	VoiceID string `mapstructure:"voice_id"`
	Style   string `mapstructure:"style"`
	Model   string `mapstructure:"model"`
}

// STTConfig selects and configures the speech recognition backend.
type STTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend"` // "whisper" or "openai"

	Whisper WhisperConfig `mapstructure:"whisper"`
	OpenAI  VendorConfig  `mapstructure:"openai"`

	// ListenSeconds is the fixed microphone capture duration per utterance.
	ListenSeconds int `mapstructure:"listen_seconds"`
}

// WhisperConfig holds local Whisper-compatible server settings.
type WhisperConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./conch.yaml, ./configs/conch.yaml, /etc/conch/conch.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("llm.backend", "demo")
	v.SetDefault("llm.ollama.endpoint", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "llama2")
	v.SetDefault("llm.openai.model", "gpt-3.5-turbo")
	v.SetDefault("llm.anthropic.model", "claude-3-haiku-20240307")
	v.SetDefault("llm.huggingface.model", "mistralai/Mistral-7B-Instruct-v0.2")
	v.SetDefault("generation.temperature", 0.8)
	v.SetDefault("generation.top_p", 0.9)
	v.SetDefault("generation.max_tokens", 150)
	v.SetDefault("generation.max_retries", 3)
	v.SetDefault("tts.enabled", false)
	v.SetDefault("tts.murf.voice_id", "Ryan")
	v.SetDefault("tts.murf.style", "Conversational")
	v.SetDefault("tts.murf.model", "Falcon")
	v.SetDefault("stt.enabled", false)
	v.SetDefault("stt.backend", "whisper")
	v.SetDefault("stt.whisper.endpoint", "http://localhost:8000/v1/audio/transcriptions")
	v.SetDefault("stt.whisper.model", "base")
	v.SetDefault("stt.openai.model", "whisper-1")
	v.SetDefault("stt.listen_seconds", 5)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("conch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/conch")
	}

	// Environment variables: CONCH_LLM_BACKEND, CONCH_TTS_ENABLED, etc.
	v.SetEnvPrefix("CONCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in credential fields (e.g., "${OPENAI_API_KEY}")
	cfg.LLM.OpenAI.APIKey = resolveEnvRef(cfg.LLM.OpenAI.APIKey)
	cfg.LLM.Anthropic.APIKey = resolveEnvRef(cfg.LLM.Anthropic.APIKey)
	cfg.LLM.HuggingFace.APIKey = resolveEnvRef(cfg.LLM.HuggingFace.APIKey)
	cfg.TTS.Murf.APIKey = resolveEnvRef(cfg.TTS.Murf.APIKey)
	cfg.STT.OpenAI.APIKey = resolveEnvRef(cfg.STT.OpenAI.APIKey)

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
