// Package el is a small element DSL for views.
//
// Element constructors take the frame's arena and a mixed argument list:
// attributes, event bindings, child nodes and strings, singly or as
// slices. Strings become text nodes. Everything is copied into the arena,
// so the result lives exactly as long as the frame.
//
//	func View(f *loop.Frame[Model], m *Model) vdom.Node {
//	    return el.Div(f.Arena, vdom.Class("counter"),
//	        el.P(f.Arena, f.OnClick(increment), f.Textf("Counter is %d", m.Counter)),
//	        el.If(m.Counter > 10, el.Span(f.Arena, "that is a lot")),
//	    )
//	}
//
// Arguments are boxed into interfaces, which the Go runtime may allocate
// on the heap. Views on a hot path can call Arena.Element directly.
package el
