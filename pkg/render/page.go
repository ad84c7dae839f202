package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/frameloop/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Title is the page title
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified
	Lang string

	// MountID is the id of the container the view is rendered into.
	// Defaults to "app" if not specified
	MountID string

	// Body is the pre-rendered content of the mount container
	Body []vdom.Node

	// Meta contains meta tags for the page
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Scripts contains script tags appended to the body
	Scripts []ScriptTag

	// Wasm is the path of the wasm module to start. Empty disables the
	// bootstrap script.
	Wasm string

	// WasmExec is the path of Go's wasm_exec.js support script.
	// Defaults to "/wasm_exec.js" if not specified
	WasmExec string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string // name attribute
	Content string // content attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Module bool   // type="module"
	Defer  bool   // defer attribute
	Inline string // inline script content
}

// wasmBootstrap starts the module at the given path with the Go runtime
// support from wasm_exec.js.
const wasmBootstrap = `const go = new Go();
WebAssembly.instantiateStreaming(fetch(%q), go.importObject).then((r) => go.run(r.instance));`

func (p *PageData) defaults() {
	if p.Lang == "" {
		p.Lang = "en"
	}
	if p.MountID == "" {
		p.MountID = "app"
	}
	if p.WasmExec == "" {
		p.WasmExec = "/wasm_exec.js"
	}
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	page.defaults()
	if err := r.renderPreamble(w, page); err != nil {
		return err
	}
	return r.renderBody(w, page)
}

func (r *Renderer) renderPreamble(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(page.Lang)); err != nil {
		return err
	}
	return r.renderHead(w, page)
}

// renderBody writes the mount container, its pre-rendered content and the
// scripts. Nothing but the view's own nodes goes inside the container.
func (r *Renderer) renderBody(w io.Writer, page PageData) error {
	if _, err := fmt.Fprintf(w, `<body>`+"\n"+`<div id="%s">`, escapeAttr(page.MountID)); err != nil {
		return err
	}
	plain := *r
	plain.config.Pretty = false
	if err := plain.RenderToWriter(w, page.Body...); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return err
	}

	for _, script := range page.Scripts {
		if err := r.renderScriptTag(w, script); err != nil {
			return err
		}
	}
	if page.Wasm != "" {
		if err := r.renderScriptTag(w, ScriptTag{Src: page.WasmExec}); err != nil {
			return err
		}
		if err := r.renderScriptTag(w, ScriptTag{Inline: fmt.Sprintf(wasmBootstrap, page.Wasm)}); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"+
		`  <meta charset="utf-8">`+"\n"+
		`  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, meta := range page.Meta {
		if _, err := fmt.Fprintf(w, `  <meta name="%s" content="%s">`+"\n", escapeAttr(meta.Name), escapeAttr(meta.Content)); err != nil {
			return err
		}
	}

	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderScriptTag renders a script element.
func (r *Renderer) renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "<script"); err != nil {
		return err
	}
	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}
	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	}
	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"+script.Inline+"</script>\n"); err != nil {
		return err
	}
	return nil
}
