// Package web serves the chat page and the JSON chat endpoint.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/intake"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

//go:embed assets
var assets embed.FS

// maxBodyBytes bounds a chat request including its transcript.
const maxBodyBytes = 1 << 20

const internalErrorDetail = "internal server error"

type Chatter interface {
	Chat(ctx context.Context, message string, history []core.Message) (intake.Result, error)
}

type Config interface {
	GetAddr() string
}

type chatRequest struct {
	Message string         `json:"message"`
	History []core.Message `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type Server struct {
	router *chi.Mux
	chat   Chatter
	page   *template.Template
	http   *http.Server
}

func NewServer(ctx context.Context, cfg Config, chat Chatter) (*Server, error) {
	page, err := template.ParseFS(assets, "assets/index.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(log.FromCtx(ctx)))
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		chat:   chat,
		page:   page,
	}

	router.Get("/", s.index)
	router.Get("/health", s.health)
	router.Post("/chat", s.handleChat)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	s.http = &http.Server{
		Addr:              cfg.GetAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.http.Addr).Msg("web server starting")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("web server stopping")
	return s.http.Shutdown(ctx)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		AppName  string
		Greeting string
	}{core.AppName, core.Greeting}
	if err := s.page.Execute(w, data); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to render chat page")
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := log.FromCtx(r.Context())

	var req chatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}
	if req.History == nil {
		req.History = []core.Message{}
	}

	res, err := s.chat.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		logger.Error().Err(err).Msg("chat request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: internalErrorDetail})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: res.Response})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger puts a request scoped logger carrying req_id into the request context.
func requestLogger(base *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			l := base.With().Str("req_id", middleware.GetReqID(r.Context())).Logger()
			ctx := l.WithContext(r.Context())

			next.ServeHTTP(ww, r.WithContext(ctx))

			l.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request served")
		})
	}
}
