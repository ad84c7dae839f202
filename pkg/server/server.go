package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/frameloop/pkg/assets"
	"github.com/vango-dev/frameloop/pkg/render"
)

// IndexFunc renders the index page. It receives the page skeleton with
// title and script URLs filled in and is expected to fill page.Body.
type IndexFunc func(w io.Writer, page render.PageData) error

// Server serves a frameloop app.
type Server struct {
	config   Config
	store    assets.Store
	resolver assets.Resolver
	index    []byte
	router   chi.Router
	logger   *slog.Logger

	requests   *prometheus.CounterVec
	httpServer *http.Server
}

// New creates a server over store. The index page is rendered once by
// index; a nil index serves the store's own index.html.
func New(ctx context.Context, store assets.Store, index IndexFunc, opts ...Option) (*Server, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	s := &Server{
		config: config,
		store:  store,
		logger: config.Logger.With("component", "server"),
	}

	s.resolver = config.Resolver
	if s.resolver == nil {
		m, err := assets.BuildManifest(ctx, store)
		if err != nil {
			return nil, fmt.Errorf("server: manifest: %w", err)
		}
		s.resolver = assets.NewResolver(m, "/")
	}

	if err := s.renderIndex(ctx, index); err != nil {
		return nil, err
	}

	s.requests = promauto.With(config.Registerer).NewCounterVec(prometheus.CounterOpts{
		Namespace: "frameloop",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by kind and status code",
	}, []string{"kind", "code"})

	s.router = s.routes()
	return s, nil
}

func (s *Server) renderIndex(ctx context.Context, index IndexFunc) error {
	if index == nil {
		a, err := s.store.Open(ctx, "index.html")
		if err != nil {
			return fmt.Errorf("server: index: %w", err)
		}
		s.index = a.Data
		return nil
	}

	var buf bytes.Buffer
	page := render.PageData{
		Title:    s.config.Title,
		MountID:  s.config.MountID,
		Wasm:     s.resolver.Asset(s.config.Wasm),
		WasmExec: s.resolver.Asset(s.config.WasmExec),
	}
	if err := index(&buf, page); err != nil {
		return fmt.Errorf("server: index: %w", err)
	}
	s.index = buf.Bytes()
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	if s.config.MetricsPath != "" {
		r.Method(http.MethodGet, s.config.MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/*", s.serveArtifact)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Index returns the rendered index page.
func (s *Server) Index() []byte {
	return s.index
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", "http://"+ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
		s.logger.Info("server shutdown complete")
		return nil
	}
}

func (s *Server) count(kind string, code int) {
	s.requests.WithLabelValues(kind, strconv.Itoa(code)).Inc()
}
