// Package server provides the HTTP API wrapper around the automation engine:
// start a run, poll its status and log lines, or stream them live.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/pragyesh/internauto/internal/bot"
)

const (
	// runRetention is how long finished runs stay queryable.
	runRetention = 30 * time.Minute
	// janitorInterval is how often expired runs are evicted.
	janitorInterval = time.Minute
)

// Runner executes one automation run. Swappable for tests.
type Runner func(ctx context.Context, opts bot.Options) bot.RunResult

// Config holds server configuration.
type Config struct {
	Port int
	// AllowedOrigin is the CORS origin allowed to call the API; "*" by
	// default.
	AllowedOrigin string
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	registry   *Registry
	validate   *validator.Validate
	runner     Runner
	origin     string
}

// New creates a new server instance.
func New(cfg Config) *Server {
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	s := &Server{
		registry: NewRegistry(runRetention),
		validate: validator.New(),
		origin:   origin,
		runner: func(ctx context.Context, opts bot.Options) bot.RunResult {
			return bot.New(opts).Run(ctx)
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/run", s.handleRun)
	mux.HandleFunc("GET /api/status/{id}", s.handleStatus)
	mux.HandleFunc("GET /api/run/{id}/stream", s.handleRunStream)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.cors(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // streaming responses stay open
	}
	return s
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.registry.Janitor(gctx, janitorInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// cors allows the configured frontend origin on every route.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
