// Package metrics exports loop activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/frameloop/pkg/loop"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "frameloop").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: render-sized buckets from 100µs to 250ms
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// DefaultBuckets covers a 60Hz frame budget with room on both sides.
var DefaultBuckets = []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .016, .025, .05, .1, .25}

func defaultConfig() Config {
	return Config{
		Namespace: "frameloop",
		Buckets:   DefaultBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Observer is a loop.Observer that records Prometheus metrics.
//
// Metrics collected:
//   - frameloop_renders_total: Counter of render passes by status (ok, aborted)
//   - frameloop_render_duration_seconds: Histogram of render pass duration
//   - frameloop_patches_total: Counter of patches applied to the document
//   - frameloop_retargets_total: Counter of listeners retargeted in place
//   - frameloop_nodes_created_total: Counter of live nodes created
//   - frameloop_dispatches_total: Counter of events by result (live, stale)
//   - frameloop_arena_bytes: Gauge of bytes allocated by the last frame
//   - frameloop_handles: Gauge of handles registered by the last frame
type Observer struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	patches        prometheus.Counter
	retargets      prometheus.Counter
	created        prometheus.Counter
	dispatches     *prometheus.CounterVec
	arenaBytes     prometheus.Gauge
	handles        prometheus.Gauge
}

var _ loop.Observer = (*Observer)(nil)

// New registers the metrics and returns an observer recording them.
// Registering twice against the same registry panics.
func New(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Observer{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		patches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of patches applied to the document",
			ConstLabels: config.ConstLabels,
		}),

		retargets: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "retargets_total",
			Help:        "Total number of listeners retargeted to a new handle",
			ConstLabels: config.ConstLabels,
		}),

		created: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_created_total",
			Help:        "Total number of live nodes created",
			ConstLabels: config.ConstLabels,
		}),

		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of dispatched events",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		arenaBytes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "arena_bytes",
			Help:        "Bytes allocated by the most recent frame",
			ConstLabels: config.ConstLabels,
		}),

		handles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handles",
			Help:        "Callback handles registered by the most recent frame",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RenderDone implements loop.Observer.
func (o *Observer) RenderDone(r loop.RenderReport) {
	o.renderDuration.Observe(r.Duration.Seconds())
	o.arenaBytes.Set(float64(r.ArenaBytes))
	o.handles.Set(float64(r.Handles))
	if r.Err != nil {
		o.rendersTotal.WithLabelValues("aborted").Inc()
		return
	}
	o.rendersTotal.WithLabelValues("ok").Inc()
	o.patches.Add(float64(r.Patches))
	o.retargets.Add(float64(r.Retargets))
	o.created.Add(float64(r.Created))
}

// Dispatched implements loop.Observer.
func (o *Observer) Dispatched(stale bool) {
	if stale {
		o.dispatches.WithLabelValues("stale").Inc()
		return
	}
	o.dispatches.WithLabelValues("live").Inc()
}
