package loop

import (
	"github.com/vango-dev/frameloop/pkg/arena"
	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// View turns a model into a virtual tree. Everything the tree references
// must be allocated from f, and the view must not retain f or the tree.
type View[M any] func(f *Frame[M], model *M) vdom.Node

// Frame is passed to a view for the duration of one render. It allocates
// from the frame's arena and registers event handlers whose handles live
// exactly as long as the frame.
type Frame[M any] struct {
	*arena.Arena

	registry *callback.Registry
	recv     callback.ReceiverID
	handles  *[]callback.Handle
	number   uint64
}

// binding is the receiver bound for a loop. Handlers reach the model and
// the render trigger only through it.
type binding[M any] struct {
	model    *M
	schedule func() bool
}

// StaticFrame returns a frame that allocates from a but registers no
// handlers. Its bindings carry zero handles. It is used to render a view
// outside of a loop, for example to pre-render HTML.
func StaticFrame[M any](a *arena.Arena) *Frame[M] {
	return &Frame[M]{Arena: a}
}

// Number returns the number of the frame being built.
func (f *Frame[M]) Number() uint64 {
	return f.number
}

// Static reports whether f registers no handlers.
func (f *Frame[M]) Static() bool {
	return f.registry == nil
}

// Handler registers fn for event and returns the binding to attach to an
// element. After fn returns the loop schedules a render.
func (f *Frame[M]) Handler(event string, opts vdom.BindingOptions, fn func(model *M, ev callback.Event)) vdom.EventBinding {
	b := vdom.EventBinding{Event: event, Options: opts}
	if f.registry == nil {
		return b
	}
	b.Handle = f.registry.Register(f.recv, func(recv any, ev callback.Event) error {
		r := recv.(*binding[M])
		fn(r.model, ev)
		r.schedule()
		return nil
	})
	*f.handles = append(*f.handles, b.Handle)
	return b
}

// On returns an arena-allocated binding list with a single handler for
// event. A static frame returns nil.
func (f *Frame[M]) On(event string, fn func(model *M, ev callback.Event)) []vdom.EventBinding {
	if f.registry == nil {
		return nil
	}
	return f.Bindings(f.Handler(event, vdom.BindingOptions{}, fn))
}

// OnClick is On for click events.
func (f *Frame[M]) OnClick(fn func(model *M)) []vdom.EventBinding {
	return f.On(vdom.EventClick, func(model *M, _ callback.Event) {
		fn(model)
	})
}
