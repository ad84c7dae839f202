// Package vdom defines the virtual tree rendered by the frame loop.
//
// A virtual tree is an immutable description of the desired UI structure for
// one frame. Views build it out of a frame arena (see package arena); the
// diff engine (package diff) compares it with the previous frame's tree and
// mutates the live document to match.
//
// # Core Types
//
// Node is a tagged union discriminated by Kind: text, element, comment, or
// multi (a run of siblings without a wrapper). Attr is an ordered
// name/value pair. EventBinding ties an event name and listener options to a
// callback.Handle.
//
// # Ownership
//
// A Node and every slice it references come from exactly one arena. Nothing
// in this package copies; reading a node after its arena has been reset
// observes recycled memory.
//
// # Helpers
//
// Text, Elem, Comment and Multi build heap-allocated nodes, which is what
// tests and one-off renders use. Views should use the arena builders instead.
package vdom
