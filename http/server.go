package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultHistoryLimit is the number of insights returned by the history
// endpoint when no limit is given.
const DefaultHistoryLimit = 20

// maxHistoryLimit caps the limit query parameter.
const maxHistoryLimit = 100

// ShutdownTimeout bounds graceful shutdown after the serve context ends.
const ShutdownTimeout = 10 * time.Second

// Server is the HTTP API for analyzing pages and managing saved digests.
type Server struct {
	Analyzer pagedigest.Analyzer
	Fetcher  pagedigest.Fetcher

	// Insights stores digests. When nil, analyses are returned unsaved,
	// history is empty and task updates are unavailable.
	Insights pagedigest.InsightService

	// Converter, if set, stores a markdown rendition with each insight.
	Converter pagedigest.Converter

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64

	router chi.Router
	log    *slog.Logger
}

// NewServer creates the server and registers its routes.
func NewServer(analyzer pagedigest.Analyzer, fetcher pagedigest.Fetcher, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Analyzer:     analyzer,
		Fetcher:      fetcher,
		MaxBodyBytes: pagedigest.DefaultMaxDocumentBytes + 1<<20,
		log:          log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/history", s.handleHistory)
		r.Get("/insights/{id}", s.handleGetInsight)
		r.Delete("/insights/{id}", s.handleDeleteInsight)
		r.Patch("/tasks/{id}", s.handleUpdateTasks)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
