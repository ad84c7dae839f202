//go:build js && wasm

package jsdom

import (
	"syscall/js"
	"testing"

	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

func newDocument(t *testing.T) *Document {
	t.Helper()
	if js.Global().Get("document").IsUndefined() {
		t.Skip("no DOM available")
	}
	return New(nil)
}

func TestReleaseDropsSubtreeListeners(t *testing.T) {
	d := newDocument(t)
	container := d.CreateElement("div")
	button := d.CreateElement("button")
	input := d.CreateElement("input")
	d.AppendChild(container, button)
	d.AppendChild(container, input)
	d.AppendChild(d.Body(), container)
	defer d.RemoveChild(d.Body(), container)

	d.AddEventListener(container, "keydown", vdom.BindingOptions{}, callback.Handle{})
	d.AddEventListener(button, "click", vdom.BindingOptions{}, callback.Handle{})
	d.AddEventListener(input, "input", vdom.BindingOptions{Passive: true}, callback.Handle{})
	if got := d.Listeners(); got != 3 {
		t.Fatalf("Listeners() = %d, want 3", got)
	}

	d.Release(container)
	if got := d.Listeners(); got != 0 {
		t.Errorf("Listeners() after Release = %d, want 0", got)
	}
	if _, ok := d.Listener(button, "click", vdom.BindingOptions{}); ok {
		t.Error("click listener still registered after Release")
	}
	// Events on released nodes must not reach a released func.
	button.Call("click")
}

func TestRemoveChildForgetsListeners(t *testing.T) {
	d := newDocument(t)
	container := d.CreateElement("div")
	child := d.CreateElement("span")
	d.AppendChild(container, child)
	d.AddEventListener(child, "click", vdom.BindingOptions{}, callback.Handle{})

	d.RemoveChild(container, child)
	if got := d.Listeners(); got != 0 {
		t.Errorf("Listeners() = %d, want 0", got)
	}
}
