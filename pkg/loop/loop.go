package loop

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/vango-dev/frameloop/pkg/arena"
	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/diff"
	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/scheduler"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// Stats is a snapshot of loop counters.
type Stats struct {
	Frames       uint64        // Committed frames
	Aborted      uint64        // Passes aborted with a RenderError
	Rejected     uint64        // Render calls rejected as re-entrant or detached
	Dispatched   uint64        // Events delivered to a live handler
	Stale        uint64        // Events dropped as stale
	LiveHandles  int           // Handles of the displayed frame
	LastDuration time.Duration // Duration of the last completed pass
	StaleReads   uint64        // Reads of a previous tree whose arena was reset
	Arena        arena.Stats   // Arena backing the displayed frame
	Diff         diff.Stats
	Scheduler    scheduler.Stats
	Registry     callback.Stats
}

// Loop renders a model into a container of a live document.
type Loop[M any, N any] struct {
	doc       dom.Document[N]
	container N
	model     M
	view      View[M]

	differ   *diff.Differ[N]
	buf      *arena.DoubleBuffer
	registry *callback.Registry
	recv     callback.ReceiverID
	host     scheduler.Host
	sched    *scheduler.Scheduler
	frame    Frame[M]

	// Handles registered by the displayed frame, and by the frame being
	// built.
	frameHandles []callback.Handle
	pending      []callback.Handle

	rendering bool
	detached  bool

	cfg    config
	logger *slog.Logger
	stats  Stats
}

// Attach mounts view over container. The container's current children become
// the baseline the first render is diffed against; Attach itself does not
// render. If doc routes events (dom.Dispatchable) it is wired to the loop.
func Attach[M any, N any](doc dom.Document[N], container N, model M, view View[M], opts ...Option) (*Loop[M, N], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Loop[M, N]{
		doc:       doc,
		container: container,
		model:     model,
		view:      view,
		differ:    diff.New(doc),
		cfg:       cfg,
		logger:    cfg.logger.With("component", "loop"),
	}

	l.buf = arena.NewDoubleBuffer(arena.WithLimit(cfg.arenaLimit), arena.WithPoison(cfg.poison))
	if err := l.buf.Seed(func(a *arena.Arena) ([]vdom.Node, error) {
		return dom.Load(doc, container, a)
	}); err != nil {
		return nil, fmt.Errorf("loop: attach: %w", err)
	}

	l.registry = cfg.registry
	if l.registry == nil {
		l.registry = callback.NewRegistry()
	}
	l.host = cfg.host
	if l.host == nil {
		l.host = scheduler.NewManual()
	}
	l.sched = scheduler.New(l.host, l.Render,
		scheduler.WithLogger(l.logger),
		scheduler.WithErrorHandler(l.renderFailed),
	)

	l.recv = l.registry.Bind(&binding[M]{model: &l.model, schedule: l.ScheduleRender})
	l.frame = Frame[M]{
		registry: l.registry,
		recv:     l.recv,
		handles:  &l.pending,
	}

	if d, ok := doc.(dom.Dispatchable); ok {
		d.SetDispatcher(l)
	}

	l.logger.Debug("loop: attached")
	return l, nil
}

// Render runs a full render pass synchronously. On failure it returns a
// *RenderError and the previously displayed frame stays in place.
func (l *Loop[M, N]) Render() error {
	if l.detached {
		l.stats.Rejected++
		return ErrDetached
	}
	if l.rendering {
		l.stats.Rejected++
		return ErrRenderInProgress
	}
	l.rendering = true
	defer func() { l.rendering = false }()

	report := RenderReport{Frame: l.buf.Frame() + 1, Start: time.Now()}
	err := l.render(&report)
	report.Duration = time.Since(report.Start)
	report.Err = err
	l.stats.LastDuration = report.Duration
	l.cfg.observer.RenderDone(report)
	return err
}

func (l *Loop[M, N]) render(report *RenderReport) error {
	prev, err := l.buf.Previous()
	if err != nil {
		return l.abort(report, "previous", err)
	}

	next, err := l.build()
	report.Handles = len(l.pending)
	report.ArenaBytes = l.buf.Spare().Stats().Bytes
	if err != nil {
		return l.abort(report, "view", err)
	}

	before := l.differ.Stats()
	if err := l.differ.UpdateChildNodes(l.container, prev, next, l.cfg.depth); err != nil {
		return l.abort(report, "diff", err)
	}
	after := l.differ.Stats()
	report.Patches = after.LastPass
	report.Retargets = int(after.Retargets - before.Retargets)
	report.Created = int(after.Created - before.Created)

	// The document no longer references the previous frame: revoke its
	// handles, then let Commit reset its arena.
	for _, h := range l.frameHandles {
		l.registry.Revoke(h)
	}
	l.frameHandles, l.pending = l.pending, l.frameHandles[:0]
	l.buf.Commit(next)
	l.stats.Frames++
	return nil
}

// build runs the view into the spare arena. Arena exhaustion and view
// panics are returned as errors.
func (l *Loop[M, N]) build() (next []vdom.Node, err error) {
	spare := l.buf.Spare()
	l.frame.Arena = spare
	l.frame.number = l.buf.Frame() + 1

	defer func() {
		l.frame.Arena = nil
		p := recover()
		if p == nil {
			return
		}
		if e, ok := p.(error); ok && errors.Is(e, arena.ErrExhausted) {
			err = e
			return
		}
		err = &PanicError{Value: p, Stack: debug.Stack()}
	}()

	root := l.view(&l.frame, &l.model)
	return spare.Nodes(root), nil
}

// abort discards the frame being built. Its handles were never attached to
// the document, so they are revoked before its arena is reset.
func (l *Loop[M, N]) abort(report *RenderReport, op string, err error) error {
	for _, h := range l.pending {
		l.registry.Revoke(h)
	}
	l.pending = l.pending[:0]
	l.buf.Discard()
	l.stats.Aborted++
	return &RenderError{Frame: report.Frame, Op: op, Err: err}
}

func (l *Loop[M, N]) renderFailed(err error) {
	l.logger.Warn("loop: render aborted", "error", err)
}

// ScheduleRender requests a render at the next host frame. Requests made
// before that frame coalesce into one render. It reports whether a new frame
// was requested.
func (l *Loop[M, N]) ScheduleRender() bool {
	if l.detached {
		return false
	}
	return l.sched.Schedule()
}

// Dispatch delivers ev to the handler behind h. Stale handles, including
// every handle after Detach, are dropped without error. A handler panic is
// returned as a *callback.HandlerError.
func (l *Loop[M, N]) Dispatch(h callback.Handle, ev callback.Event) error {
	stale := !l.registry.Valid(h)
	if stale {
		l.stats.Stale++
	} else {
		l.stats.Dispatched++
	}
	l.cfg.observer.Dispatched(stale)

	err := l.registry.Dispatch(h, ev)
	if err != nil {
		var he *callback.HandlerError
		if errors.As(err, &he) {
			l.logger.Error("loop: handler panic", "handle", he.Handle.String(), "event", he.Event, "panic", he.Panic)
		}
	}
	return err
}

// Detach stops the loop: it cancels any pending frame, revokes every handle
// the loop registered, unbinds the model and releases both arenas. The
// document is left as rendered; its listeners become inert. Detach is
// idempotent.
func (l *Loop[M, N]) Detach() error {
	if l.detached {
		return nil
	}
	if l.rendering {
		return ErrRenderInProgress
	}
	l.detached = true
	l.sched.Cancel()
	revoked := l.registry.Unbind(l.recv)
	l.frameHandles = nil
	l.pending = nil
	l.buf.Release()
	l.logger.Info("loop: detached", "frames", l.stats.Frames, "revoked", revoked)
	return nil
}

// Pending reports whether a scheduled render has not run yet.
func (l *Loop[M, N]) Pending() bool {
	return l.sched.State() == scheduler.Scheduled
}

// Detached reports whether Detach has been called.
func (l *Loop[M, N]) Detached() bool {
	return l.detached
}

// Model returns the model. Mutating it outside a handler does not schedule a
// render.
func (l *Loop[M, N]) Model() *M {
	return &l.model
}

// Host returns the frame host used by ScheduleRender.
func (l *Loop[M, N]) Host() scheduler.Host {
	return l.host
}

// Container returns the container node.
func (l *Loop[M, N]) Container() N {
	return l.container
}

// Stats returns a snapshot of the loop counters.
func (l *Loop[M, N]) Stats() Stats {
	st := l.stats
	st.LiveHandles = len(l.frameHandles)
	st.StaleReads = l.buf.StaleReads()
	if !l.buf.Released() {
		st.Arena = l.buf.Active().Stats()
	}
	st.Diff = l.differ.Stats()
	st.Scheduler = l.sched.Stats()
	st.Registry = l.registry.Stats()
	return st
}
