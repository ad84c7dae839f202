package dev

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/frameloop/internal/build"
	"github.com/vango-dev/frameloop/internal/config"
	"github.com/vango-dev/frameloop/pkg/assets"
	"github.com/vango-dev/frameloop/pkg/render"
	"github.com/vango-dev/frameloop/pkg/server"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Dir is the project directory. It is watched and built.
	Dir string

	// Addr is the listen address (default: Config.Listen).
	Addr string

	// Build configures each build. Index, if set, also renders the page
	// the dev server answers with.
	Build build.Options

	// HotReload connects pages to the reload socket.
	HotReload bool

	// Interval is the file polling interval.
	Interval time.Duration

	Logger *slog.Logger

	// OnBuild is called after every build with its result or error.
	OnBuild func(*build.Result, error)
}

// Server is the development server. It rebuilds the app when Go files
// change, copies changed public files, and tells connected pages to reload.
type Server struct {
	options  ServerOptions
	builder  *build.Builder
	watcher  *Watcher
	reload   *ReloadServer
	app      atomic.Pointer[server.Server]
	router   chi.Router
	logger   *slog.Logger
	building sync.Mutex
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Addr == "" {
		options.Addr = options.Config.Listen
	}
	logger := options.Logger.With("component", "dev")

	builder := build.New(options.Config, options.Dir, options.Build)
	out := builder.Options().Out

	ignore := append([]string(nil), DefaultIgnore...)
	if rel, err := filepath.Rel(options.Dir, out); err == nil && !strings.HasPrefix(rel, "..") {
		ignore = append(ignore, filepath.ToSlash(rel))
	}

	s := &Server{
		options: options,
		builder: builder,
		watcher: NewWatcher(WatcherConfig{
			Paths:    []string{options.Dir},
			Ignore:   ignore,
			Interval: options.Interval,
		}),
		logger: logger,
	}
	if options.HotReload {
		s.reload = NewReloadServer(logger)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	if s.reload != nil {
		r.Get(ReloadPath, s.reload.HandleWebSocket)
	}
	r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		app := s.app.Load()
		if app == nil {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "frameloop: build in progress or failed, see the terminal", http.StatusServiceUnavailable)
			return
		}
		app.ServeHTTP(w, req)
	}))
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Reload returns the reload server, or nil without hot reload.
func (s *Server) Reload() *ReloadServer {
	return s.reload
}

// Rebuild builds the app and swaps in a server for the new build
// directory. On failure the previous build keeps being served and pages
// show the error.
func (s *Server) Rebuild(ctx context.Context) error {
	s.building.Lock()
	defer s.building.Unlock()

	res, err := s.builder.Build(ctx)
	if err == nil {
		err = s.swap(ctx, res)
	}
	if s.options.OnBuild != nil {
		s.options.OnBuild(res, err)
	}
	if err != nil {
		s.logger.Error("dev: build failed", "error", err)
		if s.reload != nil {
			s.reload.NotifyError(err.Error())
		}
		return err
	}

	s.logger.Info("dev: built", "duration", res.Duration.Round(time.Millisecond), "wasm_bytes", res.WasmSize)
	if s.reload != nil {
		s.reload.ClearError()
		s.reload.NotifyReload()
	}
	return nil
}

// swap starts serving res. Development URLs carry no fingerprint and are
// never cached.
func (s *Server) swap(ctx context.Context, res *build.Result) error {
	var index server.IndexFunc
	if fn := s.builder.Options().Index; fn != nil {
		index = func(w io.Writer, page render.PageData) error {
			if s.reload != nil {
				page.Scripts = append(page.Scripts, render.ScriptTag{Inline: ReloadScript})
			}
			return fn(w, page)
		}
	}
	app, err := server.New(ctx, assets.NewDirStore(res.Dir), index,
		server.WithTitle(s.builder.Options().Title),
		server.WithResolver(assets.NewPassthroughResolver("/")),
		server.WithCacheControl(server.CacheControlNone),
		server.WithRegisterer(prometheus.NewRegistry()),
		server.WithLogger(s.options.Logger),
	)
	if err != nil {
		return err
	}
	s.app.Store(app)
	return nil
}

// HandleChanges reacts to one batch of file changes: Go changes rebuild
// the app, public files are copied and pages reloaded.
func (s *Server) HandleChanges(ctx context.Context, changes []Change) {
	public := s.builder.Options().Public
	var rebuild, style, static bool
	for _, c := range changes {
		s.logger.Debug("dev: changed", "path", c.Path, "type", c.Type, "removed", c.Removed)
		switch {
		case c.Type == ChangeGo:
			rebuild = true
		case public != "" && isWithinDir(c.Path, public):
			if c.Removed {
				// The stale copy stays in the build directory until the
				// next full build.
				rebuild = true
			} else if c.Type == ChangeStyle {
				style = true
			} else {
				static = true
			}
		}
	}

	if rebuild {
		s.Rebuild(ctx)
		return
	}
	if !style && !static {
		return
	}

	s.building.Lock()
	_, err := s.builder.CopyPublic()
	s.building.Unlock()
	if err != nil {
		s.logger.Error("dev: copy public files", "error", err)
		return
	}
	if s.reload == nil {
		return
	}
	if static {
		s.reload.NotifyReload()
	} else {
		s.reload.NotifyCSS("")
	}
}

// Run builds the app, then serves it on the configured address and
// rebuilds on change until ctx is done. A failing first build does not stop
// the server.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.options.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.Rebuild(ctx)

	changes := make(chan []Change, 16)
	s.watcher.OnChange(func(c []Change) {
		select {
		case changes <- c:
		default:
		}
	})
	go s.watcher.Start(ctx)
	defer s.watcher.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case batch := <-changes:
				// Coalesce whatever queued up during the previous build.
				for drained := false; !drained; {
					select {
					case more := <-changes:
						batch = append(batch, more...)
					default:
						drained = true
					}
				}
				s.HandleChanges(ctx, batch)
			}
		}
	}()

	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev: serving", "address", "http://"+ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		if s.reload != nil {
			s.reload.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func isWithinDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
