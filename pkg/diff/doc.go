// Package diff reconciles a live document with a virtual tree.
//
// A pass runs in two phases. Plan walks the previous and next trees side by
// side, by position, together with the live children of the parent. It checks
// that the live document still has the shape the previous tree describes and
// records the operations needed as a list of patches. Apply then executes the
// patches through the document primitives. Because every check happens during
// planning, a pass that fails leaves the document untouched.
//
// Matching is positional and keyless: the i-th child of prev is compared with
// the i-th child of next. KindMulti nodes are flattened into their parent's
// child list first.
//
// # Event Bindings
//
// When an element is kept, a binding in next that matches a binding in prev
// (same event name and options) is retargeted: the live listener now delivers
// to the new handle. This is not a document mutation, which keeps a render of
// an unchanged model free of mutations even though every frame registers
// fresh handles.
package diff
