// Package server provides the local preview server that renders documents
// for printing from a browser.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/freelance-desk/internal/db"
	"github.com/jonathan/freelance-desk/internal/rendering"
	"github.com/jonathan/freelance-desk/internal/server/ratelimit"
	"github.com/jonathan/freelance-desk/internal/types"
	"go.uber.org/zap"
)

// ProjectSource loads the records a document is rendered from.
type ProjectSource interface {
	RenderContext(ctx context.Context, projectID string) (types.RenderContext, error)
}

// Archive reads archived documents.
type Archive interface {
	GetDocument(ctx context.Context, id uuid.UUID) (*db.Document, error)
	ListDocuments(ctx context.Context, projectID string, limit int) ([]db.DocumentSummary, error)
}

// Config holds server configuration
type Config struct {
	Addr       string
	Renderer   *rendering.Renderer
	Projects   ProjectSource
	Archive    Archive // optional
	Logger     *zap.Logger
	PDFTimeout time.Duration
	RateLimit  *ratelimit.Config // nil uses ratelimit.DefaultConfig
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	renderer   *rendering.Renderer
	projects   ProjectSource
	archive    Archive
	logger     *zap.Logger
	pdfTimeout time.Duration
	limiter    *ratelimit.Limiter
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if cfg.Projects == nil {
		return nil, fmt.Errorf("project source is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limits := ratelimit.DefaultConfig()
	if cfg.RateLimit != nil {
		limits = *cfg.RateLimit
	}

	s := &Server{
		renderer:   cfg.Renderer,
		projects:   cfg.Projects,
		archive:    cfg.Archive,
		logger:     logger,
		pdfTimeout: cfg.PDFTimeout,
		limiter:    ratelimit.NewLimiter(limits, nil),
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /documents", s.handleListKinds)
	mux.HandleFunc("GET /documents/{kind}", s.handleDocument)
	mux.HandleFunc("GET /archive", s.handleListArchive)
	mux.HandleFunc("GET /archive/{id}", s.handleArchived)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withRateLimit(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF printing can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled or the process is interrupted.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	pruneTicker := time.NewTicker(10 * time.Minute)
	defer pruneTicker.Stop()

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-pruneTicker.C:
			s.limiter.Prune(time.Hour)
		case <-ctx.Done():
			s.logger.Info("shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			s.logger.Info("preview server stopped")
			return nil
		}
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// withRateLimit rejects clients that exceed the configured limits
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.limiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !info.Allowed {
			secs := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			s.logger.Warn("rate limit exceeded", zap.String("path", r.URL.Path))
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status code and writes it
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
