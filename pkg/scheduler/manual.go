package scheduler

type manualRequest struct {
	fn        func()
	cancelled bool
}

// Manual is a Host whose frames fire only when Tick is called.
type Manual struct {
	queue []*manualRequest
	ticks uint64
}

// NewManual creates a Manual host.
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame queues fn for the next Tick.
func (m *Manual) RequestFrame(fn func()) func() {
	req := &manualRequest{fn: fn}
	m.queue = append(m.queue, req)
	return func() {
		req.cancelled = true
	}
}

// Tick fires the callbacks queued before the call and returns how many ran.
// Callbacks requested while ticking wait for the next Tick.
func (m *Manual) Tick() int {
	queue := m.queue
	m.queue = nil
	m.ticks++
	ran := 0
	for _, req := range queue {
		if req.cancelled {
			continue
		}
		req.fn()
		ran++
	}
	return ran
}

// Pending returns the number of queued, uncancelled callbacks.
func (m *Manual) Pending() int {
	n := 0
	for _, req := range m.queue {
		if !req.cancelled {
			n++
		}
	}
	return n
}

// Ticks returns the number of Tick calls.
func (m *Manual) Ticks() uint64 {
	return m.ticks
}
