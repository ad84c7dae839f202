// Package tracing records render passes as OpenTelemetry spans.
package tracing

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/frameloop/pkg/loop"
)

// Default tracer name.
const defaultTracerName = "frameloop"

// SpanName is the name of the span recorded for each render pass.
const SpanName = "frameloop.render"

// Config configures the OpenTelemetry observer.
type Config struct {
	// TracerName is the name of the tracer (default: "frameloop").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Context is the parent of every span (default: context.Background()).
	Context context.Context

	// Attributes are added to every span.
	Attributes []attribute.KeyValue

	// SkipClean drops spans of passes that applied no patches.
	SkipClean bool
}

// Option configures the OpenTelemetry observer.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithContext sets the parent context of render spans.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// WithAttributes adds constant attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(c *Config) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// WithSkipClean enables or disables dropping spans for passes without
// patches.
func WithSkipClean(skip bool) Option {
	return func(c *Config) {
		c.SkipClean = skip
	}
}

// Observer is a loop.Observer that records a span per render pass. The span
// covers the pass exactly: it starts at the report's start time and ends
// after its duration. Events dispatched since the previous pass are
// recorded on the next span.
type Observer struct {
	config Config
	tracer trace.Tracer

	dispatched atomic.Int64
	stale      atomic.Int64
}

var _ loop.Observer = (*Observer)(nil)

// New creates an observer. The tracer uses the global OpenTelemetry tracer
// provider unless WithTracer is given.
func New(opts ...Option) *Observer {
	config := Config{TracerName: defaultTracerName, Context: context.Background()}
	for _, opt := range opts {
		opt(&config)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Observer{config: config, tracer: tracer}
}

// RenderDone implements loop.Observer.
func (o *Observer) RenderDone(r loop.RenderReport) {
	dispatched := o.dispatched.Swap(0)
	stale := o.stale.Swap(0)
	if o.config.SkipClean && r.Err == nil && r.Patches == 0 {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(o.config.Attributes)+8)
	attrs = append(attrs, o.config.Attributes...)
	attrs = append(attrs,
		attribute.Int64("frameloop.frame", int64(r.Frame)),
		attribute.Int("frameloop.handles", r.Handles),
		attribute.Int("frameloop.arena_bytes", r.ArenaBytes),
		attribute.Int64("frameloop.dispatched", dispatched),
		attribute.Int64("frameloop.stale", stale),
	)

	_, span := o.tracer.Start(o.config.Context, SpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(r.Start),
	)
	defer span.End(trace.WithTimestamp(r.Start.Add(r.Duration)))

	if r.Err != nil {
		span.RecordError(r.Err)
		span.SetStatus(codes.Error, r.Err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("frameloop.patches", r.Patches),
		attribute.Int("frameloop.retargets", r.Retargets),
		attribute.Int("frameloop.created", r.Created),
	)
	span.SetStatus(codes.Ok, "")
}

// Dispatched implements loop.Observer.
func (o *Observer) Dispatched(stale bool) {
	if stale {
		o.stale.Add(1)
		return
	}
	o.dispatched.Add(1)
}
