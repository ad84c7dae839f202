// Package render serialises virtual trees to HTML.
//
// It is used to pre-render the initial page so that the browser shows the
// view before the wasm module has loaded. The markup it produces parses back
// into exactly the nodes it was rendered from, which lets a loop attached to
// the pre-rendered container start with a baseline that already matches the
// first frame.
//
// # Basic Usage
//
//	r := render.NewRenderer(render.Config{})
//	html, err := r.RenderToString(nodes...)
//
// # Full Page Rendering
//
//	err := r.RenderPage(w, render.PageData{
//	    Title:   "frameloop",
//	    MountID: "app",
//	    Body:    nodes,
//	    Wasm:    "/main.wasm",
//	})
//
// # Security
//
// Text and attribute values are always escaped. Event bindings are never
// rendered; they only exist in a live document.
package render
