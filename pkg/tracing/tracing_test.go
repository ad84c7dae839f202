package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/frameloop/pkg/loop"
)

type recordedSpan struct {
	noop.Span
	name   string
	start  time.Time
	end    time.Time
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }

func (s *recordedSpan) End(opts ...trace.SpanEndOption) {
	s.ended = true
	s.end = trace.NewSpanEndConfig(opts...).Timestamp()
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, start: cfg.Timestamp(), attrs: make(map[attribute.Key]attribute.Value)}
	s.SetAttributes(cfg.Attributes()...)
	t.spans = append(t.spans, s)
	return ctx, s
}

func TestObserverRecordsRenderSpan(t *testing.T) {
	tr := &recordingTracer{}
	o := New(WithTracer(tr), WithAttributes(attribute.String("app", "counter")))

	o.Dispatched(false)
	o.Dispatched(true)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o.RenderDone(loop.RenderReport{Frame: 7, Start: start, Duration: time.Millisecond, Patches: 2, Retargets: 1, Handles: 1})

	if len(tr.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tr.spans))
	}
	s := tr.spans[0]
	if s.name != SpanName || !s.ended {
		t.Errorf("span %q ended=%v", s.name, s.ended)
	}
	if !s.start.Equal(start) || !s.end.Equal(start.Add(time.Millisecond)) {
		t.Errorf("span covers %v..%v", s.start, s.end)
	}
	if s.status != codes.Ok {
		t.Errorf("status = %v, want Ok", s.status)
	}
	for key, want := range map[attribute.Key]int64{
		"frameloop.frame":      7,
		"frameloop.patches":    2,
		"frameloop.retargets":  1,
		"frameloop.dispatched": 1,
		"frameloop.stale":      1,
	} {
		if got := s.attrs[key].AsInt64(); got != want {
			t.Errorf("%s = %d, want %d", key, got, want)
		}
	}
	if got := s.attrs["app"].AsString(); got != "counter" {
		t.Errorf("app = %q", got)
	}

	o.RenderDone(loop.RenderReport{Frame: 8, Start: start})
	if got := tr.spans[1].attrs["frameloop.dispatched"].AsInt64(); got != 0 {
		t.Errorf("dispatch count not reset: %d", got)
	}
}

func TestObserverRecordsAbortedRender(t *testing.T) {
	tr := &recordingTracer{}
	o := New(WithTracer(tr))

	boom := errors.New("boom")
	o.RenderDone(loop.RenderReport{Frame: 1, Start: time.Now(), Err: boom})

	s := tr.spans[0]
	if s.status != codes.Error {
		t.Errorf("status = %v, want Error", s.status)
	}
	if len(s.errs) != 1 || !errors.Is(s.errs[0], boom) {
		t.Errorf("recorded errors = %v", s.errs)
	}
	if _, ok := s.attrs["frameloop.patches"]; ok {
		t.Error("aborted span carries patch count")
	}
}

func TestSkipClean(t *testing.T) {
	tr := &recordingTracer{}
	o := New(WithTracer(tr), WithSkipClean(true))

	o.RenderDone(loop.RenderReport{Frame: 1, Start: time.Now()})
	o.RenderDone(loop.RenderReport{Frame: 2, Start: time.Now(), Patches: 1})
	o.RenderDone(loop.RenderReport{Frame: 3, Start: time.Now(), Err: errors.New("x")})

	if len(tr.spans) != 2 {
		t.Errorf("spans = %d, want 2", len(tr.spans))
	}
}
