package callback

import (
	"fmt"
	"runtime/debug"
)

// Handle references a registry entry. The zero Handle is never valid.
type Handle struct {
	index uint32 // slot index + 1, so that the zero value is invalid
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.index == 0
}

// String returns a debug representation such as "cb3.1".
func (h Handle) String() string {
	if h.IsZero() {
		return "cb-"
	}
	return fmt.Sprintf("cb%d.%d", h.index-1, h.gen)
}

// ReceiverID identifies the owner of a set of handlers.
// The zero ReceiverID is never bound.
type ReceiverID uint64

// Handler handles an event on behalf of a receiver. The receiver is only
// valid for the duration of the call and must not be retained.
type Handler func(recv any, ev Event) error

type slot struct {
	recv    ReceiverID
	handler Handler
	gen     uint32
	live    bool
}

// Stats is a snapshot of registry counters.
type Stats struct {
	Live       int    // Entries registered and not revoked
	Registered uint64 // Total Register calls
	Revoked    uint64 // Total entries revoked
	Dispatched uint64 // Dispatches that reached a handler
	Stale      uint64 // Dispatches dropped as stale, revoked, foreign or unbound
	Receivers  int    // Currently bound receivers
}

// Registry maps handles to (receiver, handler) pairs.
type Registry struct {
	slots     []slot
	free      []uint32
	receivers map[ReceiverID]any
	nextRecv  ReceiverID
	stats     Stats
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		receivers: make(map[ReceiverID]any),
	}
}

// Bind assigns a fresh identity to recv. Handlers registered under that
// identity receive recv when dispatched, until Unbind is called.
func (r *Registry) Bind(recv any) ReceiverID {
	r.nextRecv++
	id := r.nextRecv
	r.receivers[id] = recv
	return id
}

// Unbind revokes every entry registered for id and forgets the receiver.
// It returns the number of entries revoked.
func (r *Registry) Unbind(id ReceiverID) int {
	n := r.RevokeAll(id)
	delete(r.receivers, id)
	return n
}

// Register creates an entry valid until revoked.
func (r *Registry) Register(recv ReceiverID, h Handler) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		idx = uint32(len(r.slots) - 1)
	}

	s := &r.slots[idx]
	s.recv = recv
	s.handler = h
	s.live = true

	r.stats.Registered++
	r.stats.Live++
	return Handle{index: idx + 1, gen: s.gen}
}

// Revoke marks the entry inert. It reports whether the handle referenced a
// live entry; revoking twice or revoking a foreign handle is a no-op.
func (r *Registry) Revoke(h Handle) bool {
	s := r.lookup(h)
	if s == nil {
		return false
	}
	r.release(h.index - 1)
	return true
}

// RevokeAll revokes every live entry owned by recv.
func (r *Registry) RevokeAll(recv ReceiverID) int {
	n := 0
	for i := range r.slots {
		if r.slots[i].live && r.slots[i].recv == recv {
			r.release(uint32(i))
			n++
		}
	}
	return n
}

// Valid reports whether h references a live entry.
func (r *Registry) Valid(h Handle) bool {
	return r.lookup(h) != nil
}

// Dispatch calls the handler behind h with its receiver. Stale handles and
// handles whose receiver has been unbound are dropped silently. A panic in
// the handler is recovered and returned as a *HandlerError.
func (r *Registry) Dispatch(h Handle, ev Event) (err error) {
	s := r.lookup(h)
	if s == nil {
		r.stats.Stale++
		return nil
	}
	recv, ok := r.receivers[s.recv]
	if !ok {
		r.stats.Stale++
		return nil
	}
	handler := s.handler
	r.stats.Dispatched++

	defer func() {
		if p := recover(); p != nil {
			err = &HandlerError{Handle: h, Event: ev.Type, Panic: p, Stack: debug.Stack()}
		}
	}()
	return handler(recv, ev)
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() Stats {
	st := r.stats
	st.Receivers = len(r.receivers)
	return st
}

func (r *Registry) lookup(h Handle) *slot {
	if h.IsZero() || int(h.index) > len(r.slots) {
		return nil
	}
	s := &r.slots[h.index-1]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return s
}

func (r *Registry) release(idx uint32) {
	s := &r.slots[idx]
	s.live = false
	s.handler = nil
	s.recv = 0
	s.gen++
	r.free = append(r.free, idx)
	r.stats.Live--
	r.stats.Revoked++
}
