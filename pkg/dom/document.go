package dom

import (
	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// Document is the set of primitives used to reconcile a live tree.
// Implementations are not required to be safe for concurrent use.
//
// String arguments are usually backed by a frame arena and are only valid for
// the duration of the call. Implementations must copy every string they
// retain.
type Document[N any] interface {
	// Node creation
	CreateElement(tag string) N
	CreateText(text string) N
	CreateComment(text string) N

	// Node mutation
	SetText(n N, text string)
	SetAttribute(n N, name, value string)
	RemoveAttribute(n N, name string)

	// Tree mutation
	AppendChild(parent, child N)
	ReplaceChild(parent, newChild, oldChild N)
	RemoveChild(parent, child N)

	// Listeners. A listener is identified by (node, event, options).
	// RetargetEventListener points an existing listener at a new handle
	// without detaching it.
	AddEventListener(n N, event string, opts vdom.BindingOptions, h callback.Handle)
	RemoveEventListener(n N, event string, opts vdom.BindingOptions)
	RetargetEventListener(n N, event string, opts vdom.BindingOptions, h callback.Handle)

	// Readers
	ChildNodes(n N) []N
	Describe(n N) (NodeInfo, bool)
	Attributes(n N) []vdom.Attr
	Listener(n N, event string, opts vdom.BindingOptions) (callback.Handle, bool)
}

// NodeInfo describes a live node in virtual tree terms.
type NodeInfo struct {
	Kind vdom.Kind
	Tag  string // elements only
	Text string // text and comment nodes only
}

// Dispatcher receives events fired on live listeners.
type Dispatcher interface {
	Dispatch(h callback.Handle, ev callback.Event) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(h callback.Handle, ev callback.Event) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(h callback.Handle, ev callback.Event) error {
	return f(h, ev)
}

// Dispatchable is implemented by documents that route listener events to a
// Dispatcher.
type Dispatchable interface {
	SetDispatcher(d Dispatcher)
}
