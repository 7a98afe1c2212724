package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"captions/internal/captionload"
	"captions/internal/cuecache"
	"captions/internal/cueexport"
	"captions/internal/logging"
)

// Loader turns a request body into cues.
type Loader interface {
	LoadReader(ctx context.Context, r io.Reader, source string) (*captionload.Result, error)
}

// CacheLister exposes cached entries.
type CacheLister interface {
	List(ctx context.Context) ([]cuecache.Entry, error)
}

// Options configures a Server.
type Options struct {
	Loader Loader
	// Cache is optional; /api/cache answers 404 without it.
	Cache           CacheLister
	Logger          *slog.Logger
	Token           string
	MaxBodyBytes    int64
	DefaultFormat   cueexport.Format
	FallbackSeconds float64
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	opts   Options
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Loader == nil {
		return nil, errors.New("api server requires a loader")
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = cueexport.FormatJSON
	}
	s := &Server{
		opts: opts,
		log:  logging.NewComponentLogger(opts.Logger, "api"),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(CorrelationMiddleware)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if token := strings.TrimSpace(s.opts.Token); token != "" {
			r.Use(AuthMiddleware(token, s.log))
		}
		r.Post("/api/parse", s.handleParse)
		r.Get("/api/cache", s.handleCacheList)
	})

	s.router = r
}

// ListenAndServe serves on bind until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, bind string) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	s.log.Info("api server listening", logging.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.log.Info("api server stopped")
	return nil
}
