// Package server implements the conch's HTTP front end.
//
// The surface is a small JSON API mirroring the console experience: a
// welcome message, a chat turn, and retrieval of synthesized audio, plus an
// embedded HTML shell so the whole experience works from a browser. Swagger
// UI is mounted for the generated OpenAPI docs.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/amphitopia/conch/internal/chat"
)

//go:embed index.html
var webFS embed.FS

// Server serves the conch chat API.
type Server struct {
	port   int
	engine *chat.Engine
	server *http.Server
}

// New creates a server on the given port.
func New(port int, engine *chat.Engine) *Server {
	return &Server{port: port, engine: engine}
}

// ListenAndServe starts the HTTP server. It blocks until the context is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/welcome", s.recovered(s.handleWelcome))
	mux.HandleFunc("POST /api/chat", s.recovered(s.handleChat))
	mux.HandleFunc("GET /api/audio/{id}", s.recovered(s.handleAudio))
	mux.HandleFunc("GET /api/health", s.recovered(s.handleHealth))

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		slog.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// Close shuts the server down without waiting for the context.
func (s *Server) Close() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the JSON shape shared by the welcome and chat endpoints.
type chatResponse struct {
	Message   string `json:"message"`
	AudioURL  string `json:"audio_url,omitempty"`
	IsGoodbye bool   `json:"is_goodbye,omitempty"`
	Success   bool   `json:"success"`
}

// errorResponse is the JSON shape for 4xx/5xx bodies.
type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// handleIndex serves the embedded chat shell.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("index.html")
	if err != nil {
		http.Error(w, "ui unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleWelcome returns the welcome message with cached audio.
//
// @Summary     Get the welcome message
// @Description Returns the conch's scripted welcome line. With TTS enabled the
// @Description welcome audio is synthesized once per process; later calls reuse
// @Description the same audio URL.
// @Tags        chat
// @Produce     json
// @Success     200 {object} chatResponse
// @Router      /api/welcome [get]
func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	result := s.engine.Welcome(r.Context())
	writeJSON(w, http.StatusOK, chatResponse{
		Message:  result.Text,
		AudioURL: audioURL(result.AudioID),
		Success:  true,
	})
}

// handleChat processes one chat turn.
//
// @Summary     Send a chat message
// @Description Generates the conch's reply for a user message. Exit keywords
// @Description (exit, quit, bye, goodbye) return the goodbye line with no
// @Description generation call and no audio.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Param       message body chatRequest true "Chat turn"
// @Success     200 {object} chatResponse
// @Failure     400 {object} errorResponse "Empty message"
// @Failure     500 {object} errorResponse "Internal processing error"
// @Router      /api/chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json: " + err.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Empty message"})
		return
	}

	result := s.engine.Reply(r.Context(), message)
	writeJSON(w, http.StatusOK, chatResponse{
		Message:   result.Text,
		AudioURL:  audioURL(result.AudioID),
		IsGoodbye: result.IsGoodbye,
		Success:   true,
	})
}

// handleAudio streams a synthesized audio file.
//
// @Summary     Fetch synthesized audio
// @Description Streams the MP3 for an audio id returned by a chat or welcome call.
// @Tags        chat
// @Produce     audio/mpeg
// @Param       id path string true "Audio id"
// @Success     200 {file} binary
// @Failure     404 {object} errorResponse "Unknown audio id"
// @Router      /api/audio/{id} [get]
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	path, ok := s.engine.AudioPath(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Audio not found"})
		return
	}
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Audio not found"})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

// handleHealth reports which subsystems came up.
//
// @Summary     Health check
// @Tags        ops
// @Produce     json
// @Success     200 {object} map[string]any
// @Router      /api/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"llm_backend": string(s.engine.Backend()),
		"tts_enabled": s.engine.SpeechEnabled(),
	})
}

// recovered wraps a handler so an unexpected panic surfaces as a 500 JSON
// body instead of a dropped connection.
func (s *Server) recovered(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Error: fmt.Sprint(rec),
				})
			}
		}()
		h(w, r)
	}
}

func audioURL(id string) string {
	if id == "" {
		return ""
	}
	return "/api/audio/" + id
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
