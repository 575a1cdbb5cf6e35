// Package server exposes practice sessions as a JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/topic"
)

// Options configures a Server.
type Options struct {
	Registry *Registry
	Catalog  *topic.Catalog

	// Lang is used when a request has no usable Accept-Language.
	Lang string

	// Health is pinged by /healthz when set, e.g. the Redis session store.
	Health interface{ HealthCheck(context.Context) error }

	Logger *slog.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	reg     *Registry
	catalog *topic.Catalog
	lang    string
	health  interface{ HealthCheck(context.Context) error }
	log     *slog.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	s := &Server{
		reg:     opts.Registry,
		catalog: opts.Catalog,
		lang:    opts.Lang,
		health:  opts.Health,
		log:     opts.Logger,
	}
	if s.lang == "" {
		s.lang = "en"
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(s.lang))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/topics", s.handleTopics)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleEndSession)
			r.Post("/topics/{topicID}/next", s.handleNext)
			r.Post("/topics/{topicID}/answer", s.handleAnswer)
			r.Get("/topics/{topicID}/solution", s.handleSolution)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// writeError maps domain errors to status codes with a localized message.
// current, when set, is the problem a parse error refers to.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, current *problemgen.Problem) {
	ctx := r.Context()
	var perr *answer.ParseError
	switch {
	case errors.As(err, &perr):
		body := errorBody{
			Error:   "invalid_format",
			Message: i18n.Td(ctx, "InvalidFormat", map[string]any{"Input": perr.Input}),
		}
		if current != nil {
			body.Hint = i18n.FormatHint(ctx, current.Answer)
		}
		writeJSON(w, http.StatusUnprocessableEntity, body)
	case errors.Is(err, errUnknownSession):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown_session", Message: i18n.T(ctx, "UnknownSession")})
	case errors.Is(err, session.ErrUnknownTopic), errors.Is(err, problemgen.ErrUnknownTopic):
		writeJSON(w, http.StatusNotFound, errorBody{
			Error:   "unknown_topic",
			Message: i18n.Td(ctx, "UnknownTopic", map[string]any{"Topic": chi.URLParam(r, "topicID")}),
		})
	case errors.Is(err, session.ErrNoProblem):
		writeJSON(w, http.StatusConflict, errorBody{Error: "no_problem", Message: i18n.T(ctx, "NoProblem")})
	default:
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal", Message: http.StatusText(http.StatusInternalServerError)})
	}
}
