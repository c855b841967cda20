// Package server exposes the library, reader and publisher views over HTTP.
//
// Every request gets its own reader navigation; nothing is shared between
// requests except the fetch client.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"novel-reader/config"
	"novel-reader/model"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/cors"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type Server struct {
	source    model.Source
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
	router    *chi.Mux
	http      *http.Server
}

func New(cfg *config.Config, source model.Source, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		source: source,
		logger: logger,
		router: chi.NewRouter(),
	}
	if cfg.Sanitize {
		s.sanitizer = bluemonday.UGCPolicy()
	}

	s.router.Use(requestID)
	s.router.Use(requestLogger(logger))
	s.router.Use(recoverer(logger))
	s.router.Use(withTheme)
	s.router.Use(chimw.CleanPath)

	s.router.Get("/", s.handleLibrary)
	s.router.Get("/read/{novelId}", s.handleRead)
	s.router.Get("/read/{novelId}/{chapterId}", s.handleRead)
	s.router.Get("/publish", s.handlePublisher)
	s.router.Post("/publish/bundle", s.handleBundle)
	s.router.Post("/theme", s.handleTheme)

	if cfg.StaticDir != "" {
		corsHandler := cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		})
		files := http.StripPrefix("/novels/", http.FileServer(http.Dir(cfg.StaticDir+"/novels")))
		s.router.Handle("/novels/*", corsHandler.Handler(files))
		logger.Info("serving static tree", slog.String("dir", cfg.StaticDir))
	}

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.http.Addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
