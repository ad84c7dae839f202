package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/frameloop/pkg/arena"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// RenderView runs view once against model on a static frame and writes the
// resulting HTML to w. Event bindings are dropped, so the output is the
// markup a loop attached to the same container would start from.
func RenderView[M any](w io.Writer, r *Renderer, view loop.View[M], model M) error {
	a := arena.New()
	defer a.Release()

	root, err := runView(a, view, &model)
	if err != nil {
		return err
	}
	return r.RenderToWriter(w, root)
}

// PageView pre-renders view into page.Body and renders the page. Nothing is
// written if the view panics.
func PageView[M any](w io.Writer, r *Renderer, page PageData, view loop.View[M], model M) error {
	a := arena.New()
	defer a.Release()

	root, err := runView(a, view, &model)
	if err != nil {
		return err
	}
	page.Body = []vdom.Node{root}
	return r.RenderPage(w, page)
}

// runView calls view on a static frame, turning a panic into an error.
func runView[M any](a *arena.Arena, view loop.View[M], model *M) (root vdom.Node, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render: view panicked: %v", p)
		}
	}()
	return view(loop.StaticFrame[M](a), model), nil
}
