package scheduler

import "log/slog"

// Host provides frame callbacks. RequestFrame arranges for fn to run once,
// on the host's event thread, at the next frame. The returned function
// cancels the request if it has not fired yet.
type Host interface {
	RequestFrame(fn func()) (cancel func())
}

// HostFunc adapts a function to Host.
type HostFunc func(fn func()) (cancel func())

// RequestFrame calls f.
func (f HostFunc) RequestFrame(fn func()) func() {
	return f(fn)
}

// State is the scheduler state.
type State uint8

const (
	Idle State = iota
	Scheduled
)

func (s State) String() string {
	if s == Scheduled {
		return "scheduled"
	}
	return "idle"
}

// Stats is a snapshot of scheduler counters.
type Stats struct {
	Requested uint64 // Frames requested from the host
	Coalesced uint64 // Schedule calls absorbed by a pending frame
	Fired     uint64 // Frames that ran the render function
	Failed    uint64 // Renders that returned an error
	Cancelled uint64 // Pending frames revoked by Cancel
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithErrorHandler sets the function receiving render errors. By default
// they are logged.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Scheduler) {
		s.onError = fn
	}
}

// WithLogger sets the logger used by the default error handler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// Scheduler turns any number of render requests between two frames into a
// single render. It is not safe for concurrent use; call it from the host's
// event thread.
type Scheduler struct {
	host   Host
	render func() error

	state  State
	cancel func()
	seq    uint64 // identifies the pending request

	onError func(error)
	logger  *slog.Logger
	stats   Stats
}

// New creates an idle scheduler that runs render on host frames.
func New(host Host, render func() error, opts ...Option) *Scheduler {
	s := &Scheduler{
		host:   host,
		render: render,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.onError == nil {
		s.onError = func(err error) {
			s.logger.Warn("scheduler: render failed", "error", err)
		}
	}
	return s
}

// Schedule requests a render at the next frame. It reports whether a new
// frame was requested; false means a pending frame already covers it.
func (s *Scheduler) Schedule() bool {
	if s.state == Scheduled {
		s.stats.Coalesced++
		return false
	}
	s.state = Scheduled
	s.seq++
	seq := s.seq
	s.stats.Requested++
	s.cancel = s.host.RequestFrame(func() { s.tick(seq) })
	return true
}

// Cancel revokes the pending frame, if any, and reports whether there was
// one.
func (s *Scheduler) Cancel() bool {
	if s.state != Scheduled {
		return false
	}
	s.state = Idle
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.stats.Cancelled++
	return true
}

// State returns the current state.
func (s *Scheduler) State() State {
	return s.state
}

// Stats returns a snapshot of the counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

func (s *Scheduler) tick(seq uint64) {
	// A host that cannot cancel may still fire a revoked request.
	if s.state != Scheduled || seq != s.seq {
		return
	}
	s.state = Idle
	s.cancel = nil
	s.stats.Fired++
	if err := s.render(); err != nil {
		s.stats.Failed++
		s.onError(err)
	}
}
