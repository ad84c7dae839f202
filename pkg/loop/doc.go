// Package loop drives a view over a live document.
//
// A Loop owns a model, a view function that turns the model into a virtual
// tree, and the container in the live document the tree is rendered into.
// Each render builds the next tree in the spare arena of a double buffer,
// reconciles the container against the previous tree, and then retires the
// previous frame: its callback handles are revoked first, its arena is reset
// second. A render that fails at any point leaves the displayed frame, the
// document and its listeners exactly as they were.
//
// Event handlers registered through a Frame receive the model by pointer and
// may mutate it; the loop then schedules a coalesced render. Handlers never
// capture the loop itself: they reach the model through the receiver
// identity bound at Attach, which Detach unbinds. Events delivered after
// Detach are therefore silently dropped.
//
// # Thread Safety
//
// A Loop is not safe for concurrent use. Events, frame callbacks and calls
// to Render must all happen on the host's event thread.
package loop
