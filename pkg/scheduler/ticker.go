package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sentinel errors returned by Ticker.
var (
	// ErrTickerRunning is returned by Run when the ticker is already running.
	ErrTickerRunning = errors.New("scheduler: ticker already running")

	// ErrTickerStopped is returned by Post and Run after Run has returned.
	ErrTickerStopped = errors.New("scheduler: ticker stopped")
)

// Buffer size of the task channel.
const taskChSize = 128

// Ticker is a Host with its own serial event loop. Tasks posted from any
// goroutine and frame callbacks all run on the goroutine that called Run,
// one at a time, so they may share state without synchronization.
//
// RequestFrame must be called from the loop goroutine, that is from a posted
// task or a frame callback.
type Ticker struct {
	interval time.Duration
	tasks    chan func()
	done     chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool

	frames []*manualRequest
}

// NewTicker creates a Ticker firing frames at fps frames per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{
		interval: time.Second / time.Duration(fps),
		tasks:    make(chan func(), taskChSize),
		done:     make(chan struct{}),
	}
}

// Interval returns the frame interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// RequestFrame queues fn for the next frame.
func (t *Ticker) RequestFrame(fn func()) func() {
	req := &manualRequest{fn: fn}
	t.frames = append(t.frames, req)
	return func() {
		req.cancelled = true
	}
}

// Post enqueues fn to run on the loop goroutine. It may block if the task
// buffer is full.
func (t *Ticker) Post(fn func()) error {
	select {
	case <-t.done:
		return ErrTickerStopped
	default:
	}
	select {
	case t.tasks <- fn:
		return nil
	case <-t.done:
		return ErrTickerStopped
	}
}

// Run runs the loop until ctx is done. Queued tasks that have not started
// when ctx is done are dropped.
func (t *Ticker) Run(ctx context.Context) error {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return ErrTickerStopped
	}
	if t.running {
		t.mu.Unlock()
		return ErrTickerRunning
	}
	t.running = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.stopped = true
		t.mu.Unlock()
		close(t.done)
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.tasks:
			fn()
		case <-ticker.C:
			t.fire()
		}
	}
}

func (t *Ticker) fire() {
	if len(t.frames) == 0 {
		return
	}
	frames := t.frames
	t.frames = nil
	for _, req := range frames {
		if !req.cancelled {
			req.fn()
		}
	}
}
