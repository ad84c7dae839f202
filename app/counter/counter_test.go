package counter

import (
	"bytes"
	"testing"

	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/render"
	"github.com/vango-dev/frameloop/pkg/scheduler"
	"github.com/vango-dev/frameloop/pkg/vtest"
)

func TestPrerender(t *testing.T) {
	var buf bytes.Buffer
	if err := render.RenderView(&buf, render.NewRenderer(render.Config{}), View, New("server")); err != nil {
		t.Fatal(err)
	}
	want := "<p>Hello from server of your full-stack Go app! Counter is 0</p>"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClicksInBrowserArea(t *testing.T) {
	doc := dom.NewHeadless()
	app := doc.CreateElement("div")
	doc.AppendChild(doc.Body(), app)
	host := scheduler.NewManual()

	l, err := loop.Attach(doc, app, New("browser"), View, loop.WithScheduler(host))
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Render(); err != nil {
		t.Fatal(err)
	}

	p := doc.ChildNodes(app)[0]
	for i := 0; i < 3; i++ {
		if _, err := doc.Click(p); err != nil {
			t.Fatal(err)
		}
	}
	if got := host.Tick(); got != 1 {
		t.Errorf("ticked %d frames, want 1", got)
	}

	want := "<p>Hello from browser of your full-stack Go app! Counter is 3</p>"
	if got := doc.InnerHTML(app); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if l.Model().Counter != 3 {
		t.Errorf("Counter = %d, want 3", l.Model().Counter)
	}
	// The paragraph is patched in place.
	if doc.ChildNodes(app)[0] != p {
		t.Error("paragraph was replaced")
	}
}

func TestStaticMarkup(t *testing.T) {
	vtest.ExpectElement(t, View, New("server"), "p")
	vtest.ExpectContains(t, View, Model{Area: "server", Counter: 7}, "Counter is 7")
	vtest.ExpectNotContains(t, View, New("server"), "onclick")
}

func TestResumeAfterReload(t *testing.T) {
	h := vtest.Prerender(t, View, New("server"))
	if got := h.Counts().Created; got != 0 {
		t.Errorf("Created = %d, want 0", got)
	}

	h.Click("p")
	h.Click("p")
	h.Tick()
	h.ExpectHTML("<p>Hello from server of your full-stack Go app! Counter is 2</p>")

	h.Reload()
	h.ExpectHTML("<p>Hello from server of your full-stack Go app! Counter is 2</p>")
	h.Click("p")
	h.Tick()
	if h.Model().Counter != 3 {
		t.Errorf("Counter = %d, want 3", h.Model().Counter)
	}
}
