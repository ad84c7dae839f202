package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

type counter struct {
	n int
}

func counterView(f *loop.Frame[counter], m *counter) vdom.Node {
	return f.Element("p", f.Attrs(vdom.Class("counter")), f.OnClick(func(m *counter) { m.n++ }),
		f.Textf("Counter is %d", m.n),
	)
}

func TestRenderPage(t *testing.T) {
	r := NewRenderer(Config{})
	var buf bytes.Buffer
	err := r.RenderPage(&buf, PageData{
		Title:       "Demo <1>",
		Body:        []vdom.Node{vdom.Elem("p", nil, nil, vdom.Text("hi"))},
		Meta:        []MetaTag{{Name: "description", Content: "a \"demo\""}},
		StyleSheets: []string{"/app.css"},
		Scripts:     []ScriptTag{{Src: "/extra.js", Defer: true}},
		Wasm:        "/app.wasm",
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="en">`,
		"<title>Demo &lt;1&gt;</title>",
		`<meta name="description" content="a &quot;demo&quot;">`,
		`<link rel="stylesheet" href="/app.css">`,
		`<div id="app"><p>hi</p></div>`,
		`<script src="/extra.js" defer></script>`,
		`<script src="/wasm_exec.js"></script>`,
		`fetch("/app.wasm")`,
		"go.run(r.instance)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "/extra.js") > strings.Index(out, "/wasm_exec.js") {
		t.Error("page scripts should precede the wasm bootstrap")
	}
}

func TestRenderPageWithoutWasm(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(Config{}).RenderPage(&buf, PageData{MountID: "root", Lang: "de"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `<div id="root"></div>`) || !strings.Contains(out, `lang="de"`) {
		t.Errorf("unexpected page:\n%s", out)
	}
	if strings.Contains(out, "WebAssembly") {
		t.Error("bootstrap rendered without a wasm path")
	}
}

func TestPrettyPageKeepsMountTight(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(Config{Pretty: true})
	page := PageData{Body: []vdom.Node{vdom.Elem("div", nil, nil, vdom.Elem("p", nil, nil, vdom.Text("x")))}}
	if err := r.RenderPage(&buf, page); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<div id="app"><div><p>x</p></div></div>`) {
		t.Errorf("mount content was indented:\n%s", buf.String())
	}
}

func TestRenderView(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderView(&buf, NewRenderer(Config{}), counterView, counter{n: 7}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `<p class="counter">Counter is 7</p>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	panicky := func(*loop.Frame[counter], *counter) vdom.Node { panic("boom") }
	if err := RenderView(&buf, NewRenderer(Config{}), panicky, counter{}); err == nil {
		t.Error("expected error from panicking view")
	}
}

func TestPageViewRecoversPanickingView(t *testing.T) {
	var buf bytes.Buffer
	panicky := func(*loop.Frame[counter], *counter) vdom.Node { panic("boom") }
	err := PageView(&buf, NewRenderer(Config{}), PageData{Title: "x"}, panicky, counter{})
	if err == nil || !strings.Contains(err.Error(), "view panicked: boom") {
		t.Fatalf("got %v, want view panic error", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q before failing", buf.String())
	}
}

// A pre-rendered page is a baseline the first loop render only has to
// attach listeners to.
func TestPrerenderedPageAttachesWithoutRebuilding(t *testing.T) {
	var buf bytes.Buffer
	if err := PageView(&buf, NewRenderer(Config{}), PageData{Wasm: "/app.wasm"}, counterView, counter{n: 3}); err != nil {
		t.Fatal(err)
	}

	doc := dom.NewHeadless()
	if _, err := doc.Parse(buf.String()); err != nil {
		t.Fatal(err)
	}
	app := doc.ByID("app")
	if app == nil {
		t.Fatal("mount container not found")
	}

	l, err := loop.Attach(doc, app, counter{n: 3}, counterView)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := l.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	counts := doc.Counts()
	if counts.Created != 0 || counts.TextSet != 0 || counts.AttrSet != 0 || counts.Replaced != 0 {
		t.Errorf("first render rebuilt pre-rendered content: %+v", counts)
	}
	if counts.ListenersAdded != 1 {
		t.Errorf("ListenersAdded = %d, want 1", counts.ListenersAdded)
	}

	p := doc.ChildNodes(app)[0]
	if _, err := doc.Click(p); err != nil {
		t.Fatal(err)
	}
	if err := l.Render(); err != nil {
		t.Fatal(err)
	}
	if got, want := doc.InnerHTML(app), `<p class="counter">Counter is 4</p>`; got != want {
		t.Errorf("after click: %q, want %q", got, want)
	}
}
