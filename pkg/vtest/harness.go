package vtest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/render"
	"github.com/vango-dev/frameloop/pkg/scheduler"
)

// ContainerID is the id of the element views are mounted into.
const ContainerID = "app"

// Harness is a view mounted on a headless document.
type Harness[M any] struct {
	t    testing.TB
	view loop.View[M]
	opts []loop.Option

	doc       *dom.Headless
	container *html.Node
	host      *scheduler.Manual
	loop      *loop.Loop[M, *html.Node]
	reloads   int
}

// Mount attaches view to an empty container and renders the first frame.
// The loop is detached when the test ends.
func Mount[M any](t testing.TB, view loop.View[M], model M, opts ...loop.Option) *Harness[M] {
	t.Helper()
	h := &Harness[M]{t: t, view: view, opts: opts}
	h.doc = dom.NewHeadless(dom.WithJournal(true))
	h.container = h.doc.CreateElement("div")
	h.doc.SetAttribute(h.container, "id", ContainerID)
	h.doc.AppendChild(h.doc.Body(), h.container)
	h.doc.ResetCounts()
	h.attach(model)
	return h
}

// Prerender renders view on the server side, parses the markup and attaches
// a loop that adopts it. The first frame only binds listeners.
func Prerender[M any](t testing.TB, view loop.View[M], model M, opts ...loop.Option) *Harness[M] {
	t.Helper()
	h := &Harness[M]{t: t, view: view, opts: opts}
	h.doc = dom.NewHeadless(dom.WithJournal(true))
	h.adopt(model)
	return h
}

func (h *Harness[M]) adopt(model M) {
	h.t.Helper()
	var sb strings.Builder
	page := render.PageData{Title: "vtest", MountID: ContainerID}
	if err := render.PageView(&sb, render.NewRenderer(render.Config{}), page, h.view, model); err != nil {
		h.t.Fatalf("vtest: prerender: %v", err)
	}
	if _, err := h.doc.Parse(sb.String()); err != nil {
		h.t.Fatalf("vtest: %v", err)
	}
	h.container = h.doc.ByID(ContainerID)
	if h.container == nil {
		h.t.Fatalf("vtest: prerendered page has no #%s", ContainerID)
	}
	h.doc.ResetCounts()
	h.attach(model)
}

func (h *Harness[M]) attach(model M) {
	h.t.Helper()
	h.host = scheduler.NewManual()
	opts := append([]loop.Option{loop.WithScheduler(h.host)}, h.opts...)
	l, err := loop.Attach(h.doc, h.container, model, h.view, opts...)
	if err != nil {
		h.t.Fatalf("vtest: attach: %v", err)
	}
	h.loop = l
	h.t.Cleanup(func() { _ = l.Detach() })
	h.Render()
}

// Render runs a render pass and fails the test on error.
func (h *Harness[M]) Render() {
	h.t.Helper()
	if err := h.loop.Render(); err != nil {
		h.t.Fatalf("vtest: render: %v", err)
	}
}

// Tick runs the pending frame, if any, and returns how many ran.
func (h *Harness[M]) Tick() int {
	return h.host.Tick()
}

// Find returns the first element with the given tag inside the container,
// or nil.
func (h *Harness[M]) Find(tag string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(h.container)
	return found
}

// Click fires a click on the first element with the given tag. It fails the
// test if there is no such element or a handler fails, and returns the
// number of listeners invoked.
func (h *Harness[M]) Click(tag string) int {
	h.t.Helper()
	n := h.Find(tag)
	if n == nil {
		h.t.Fatalf("vtest: no <%s> to click in:\n%s", tag, truncate(h.HTML(), 500))
	}
	invoked, err := h.doc.Click(n)
	if err != nil {
		h.t.Fatalf("vtest: click <%s>: %v", tag, err)
	}
	return invoked
}

// Reload simulates a page refresh: the loop is detached, the current model
// is rendered on the server side into a fresh document and a new loop
// adopts it.
func (h *Harness[M]) Reload() {
	h.t.Helper()
	model := *h.loop.Model()
	if err := h.loop.Detach(); err != nil {
		h.t.Fatalf("vtest: detach: %v", err)
	}
	h.reloads++
	h.adopt(model)
}

// Reloads returns how many times Reload was called.
func (h *Harness[M]) Reloads() int { return h.reloads }

// HTML returns the markup of the container's children.
func (h *Harness[M]) HTML() string { return h.doc.InnerHTML(h.container) }

// Model returns the loop's model.
func (h *Harness[M]) Model() *M { return h.loop.Model() }

// Loop returns the mounted loop.
func (h *Harness[M]) Loop() *loop.Loop[M, *html.Node] { return h.loop }

// Doc returns the headless document.
func (h *Harness[M]) Doc() *dom.Headless { return h.doc }

// Stats returns the loop counters.
func (h *Harness[M]) Stats() loop.Stats { return h.loop.Stats() }

// Counts returns the document mutations since the current loop attached.
func (h *Harness[M]) Counts() dom.Counts { return h.doc.Counts() }

// ExpectHTML asserts that the container holds exactly want.
func (h *Harness[M]) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("container HTML:\n got: %s\nwant: %s", got, want)
	}
}

// ExpectContains asserts that the container's markup contains expected.
func (h *Harness[M]) ExpectContains(expected string) {
	h.t.Helper()
	expectContains(h.t, h.HTML(), expected)
}

// ExpectNotContains asserts that the container's markup does not contain
// unexpected.
func (h *Harness[M]) ExpectNotContains(unexpected string) {
	h.t.Helper()
	expectNotContains(h.t, h.HTML(), unexpected)
}
