package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/frameloop/pkg/assets"
)

// CacheControl selects the caching headers sent with artifacts.
type CacheControl int

const (
	// CacheControlNone disables caching, for development.
	CacheControlNone CacheControl = iota

	// CacheControlProduction caches versioned URLs forever and revalidates
	// everything else hourly.
	CacheControlProduction
)

// Config configures the server.
type Config struct {
	// Addr is the listen address (default: "localhost:8080").
	Addr string

	// Title is the index page title.
	Title string

	// MountID is the id of the container the app attaches to (default: "app").
	MountID string

	// Wasm and WasmExec name the artifacts loaded by the index page
	// (defaults: "app.wasm" and "wasm_exec.js").
	Wasm     string
	WasmExec string

	// MetricsPath is where Prometheus metrics are served. Empty disables
	// the endpoint.
	MetricsPath string

	// Gatherer provides the exposed metrics (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer

	// Registerer receives the server's own metrics
	// (default: prometheus.DefaultRegisterer).
	Registerer prometheus.Registerer

	// Resolver turns artifact names into page URLs. Defaults to a resolver
	// over a manifest built from the store at startup.
	Resolver assets.Resolver

	CacheControl CacheControl

	// ShutdownTimeout bounds graceful shutdown (default: 10s).
	ShutdownTimeout time.Duration

	Logger *slog.Logger
}

// Option configures the server.
type Option func(*Config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		c.Addr = addr
	}
}

// WithTitle sets the index page title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithMetrics serves metrics from g at path.
func WithMetrics(path string, g prometheus.Gatherer) Option {
	return func(c *Config) {
		c.MetricsPath = path
		c.Gatherer = g
	}
}

// WithRegisterer sets the registry for the server's request metrics.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registerer = r
	}
}

// WithResolver sets the artifact URL resolver.
func WithResolver(r assets.Resolver) Option {
	return func(c *Config) {
		c.Resolver = r
	}
}

// WithCacheControl sets the caching strategy.
func WithCacheControl(cc CacheControl) Option {
	return func(c *Config) {
		c.CacheControl = cc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func defaultConfig() Config {
	return Config{
		Addr:            "localhost:8080",
		MountID:         "app",
		Wasm:            "app.wasm",
		WasmExec:        "wasm_exec.js",
		Gatherer:        prometheus.DefaultGatherer,
		Registerer:      prometheus.DefaultRegisterer,
		ShutdownTimeout: 10 * time.Second,
		Logger:          slog.Default(),
	}
}
