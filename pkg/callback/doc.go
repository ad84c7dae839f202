// Package callback implements the registry that links live document event
// listeners to handlers.
//
// A listener never holds a handler or its receiver directly. It holds a
// Handle: a slot index plus a generation. Dispatch resolves the slot, checks
// the generation and the liveness flag, then resolves the receiver by its
// identity. Any step that fails turns the dispatch into a silent no-op, so
// events that arrive after the UI that produced them has been replaced or
// detached are harmless.
//
// # Lifetimes
//
// Entries are created per rendered frame and share that frame's lifetime.
// The render loop revokes a frame's entries before the arena backing that
// frame is reset. Revoked slots are recycled with a bumped generation, which
// guarantees an old Handle can never reach a newer entry.
//
// # Thread Safety
//
// A Registry is not safe for concurrent use. Hosts deliver events and frame
// callbacks on a single logical thread.
package callback
