//go:build js && wasm

// Package jsdom implements dom.Document on top of the browser DOM through
// syscall/js.
package jsdom

import (
	"log/slog"
	"strconv"
	"strings"
	"syscall/js"
	"time"

	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// idProperty stores the Go-side listener table key on a JS node.
const idProperty = "__frameloop"

// Node types as reported by Node.nodeType.
const (
	elementNode = 1
	textNode    = 3
	commentNode = 8
)

type listenerKey struct {
	event string
	opts  vdom.BindingOptions
}

type listener struct {
	fn     js.Func
	handle callback.Handle
}

// Document is a dom.Document backed by the page's document object.
type Document struct {
	doc        js.Value
	dispatcher dom.Dispatcher
	listeners  map[int]map[listenerKey]*listener
	nextID     int
	logger     *slog.Logger
}

var _ dom.Document[js.Value] = (*Document)(nil)

// New wraps the global document.
func New(logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	return &Document{
		doc:       js.Global().Get("document"),
		listeners: make(map[int]map[listenerKey]*listener),
		logger:    logger,
	}
}

// ByID returns the element with the given id, or js.Null().
func (d *Document) ByID(id string) js.Value {
	return d.doc.Call("getElementById", id)
}

// Body returns document.body.
func (d *Document) Body() js.Value {
	return d.doc.Get("body")
}

// SetDispatcher routes listener events to disp.
func (d *Document) SetDispatcher(disp dom.Dispatcher) {
	d.dispatcher = disp
}

func (d *Document) CreateElement(tag string) js.Value {
	return d.doc.Call("createElement", tag)
}

func (d *Document) CreateText(text string) js.Value {
	return d.doc.Call("createTextNode", text)
}

func (d *Document) CreateComment(text string) js.Value {
	return d.doc.Call("createComment", text)
}

func (d *Document) SetText(n js.Value, text string) {
	n.Set("data", text)
}

func (d *Document) SetAttribute(n js.Value, name, value string) {
	n.Call("setAttribute", name, value)
}

func (d *Document) RemoveAttribute(n js.Value, name string) {
	n.Call("removeAttribute", name)
}

func (d *Document) AppendChild(parent, child js.Value) {
	parent.Call("appendChild", child)
}

func (d *Document) ReplaceChild(parent, newChild, oldChild js.Value) {
	parent.Call("replaceChild", newChild, oldChild)
	d.forget(oldChild)
}

func (d *Document) RemoveChild(parent, child js.Value) {
	parent.Call("removeChild", child)
	d.forget(child)
}

func (d *Document) nodeID(n js.Value, create bool) (int, bool) {
	v := n.Get(idProperty)
	if v.Type() == js.TypeNumber {
		return v.Int(), true
	}
	if !create {
		return 0, false
	}
	d.nextID++
	n.Set(idProperty, d.nextID)
	return d.nextID, true
}

// forget releases the listener functions of a detached subtree.
func (d *Document) forget(n js.Value) {
	d.unbind(n, false)
}

// Release unbinds and releases every listener registered on n and its
// descendants. Call it once the loop owning n has been detached; the nodes
// stay in the page but no longer hold Go callbacks.
func (d *Document) Release(n js.Value) {
	d.unbind(n, true)
}

// Listeners reports how many Go listener functions are currently held.
func (d *Document) Listeners() int {
	total := 0
	for _, set := range d.listeners {
		total += len(set)
	}
	return total
}

func (d *Document) unbind(n js.Value, remove bool) {
	if id, ok := d.nodeID(n, false); ok {
		for key, l := range d.listeners[id] {
			if remove {
				n.Call("removeEventListener", key.event, l.fn, map[string]any{"capture": key.opts.Capture})
			}
			l.fn.Release()
		}
		delete(d.listeners, id)
	}
	children := n.Get("childNodes")
	for i := 0; i < children.Length(); i++ {
		d.unbind(children.Index(i), remove)
	}
}

func (d *Document) AddEventListener(n js.Value, event string, opts vdom.BindingOptions, h callback.Handle) {
	event = strings.Clone(event)
	id, _ := d.nodeID(n, true)
	set := d.listeners[id]
	if set == nil {
		set = make(map[listenerKey]*listener)
		d.listeners[id] = set
	}
	key := listenerKey{event, opts}
	if old, ok := set[key]; ok {
		old.handle = h
		return
	}

	l := &listener{handle: h}
	l.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		if d.dispatcher == nil || len(args) == 0 {
			return nil
		}
		if err := d.dispatcher.Dispatch(l.handle, toEvent(args[0])); err != nil {
			d.logger.Error("jsdom: listener failed", "event", event, "handle", l.handle.String(), "error", err)
		}
		return nil
	})
	set[key] = l
	n.Call("addEventListener", event, l.fn, map[string]any{
		"capture": opts.Capture,
		"passive": opts.Passive,
	})
}

func (d *Document) RemoveEventListener(n js.Value, event string, opts vdom.BindingOptions) {
	id, ok := d.nodeID(n, false)
	if !ok {
		return
	}
	set := d.listeners[id]
	key := listenerKey{event, opts}
	l, ok := set[key]
	if !ok {
		return
	}
	n.Call("removeEventListener", event, l.fn, map[string]any{"capture": opts.Capture})
	l.fn.Release()
	delete(set, key)
}

func (d *Document) RetargetEventListener(n js.Value, event string, opts vdom.BindingOptions, h callback.Handle) {
	if id, ok := d.nodeID(n, false); ok {
		if l, ok := d.listeners[id][listenerKey{event, opts}]; ok {
			l.handle = h
			return
		}
	}
	d.AddEventListener(n, event, opts, h)
}

func (d *Document) ChildNodes(n js.Value) []js.Value {
	children := n.Get("childNodes")
	out := make([]js.Value, children.Length())
	for i := range out {
		out[i] = children.Index(i)
	}
	return out
}

func (d *Document) Describe(n js.Value) (dom.NodeInfo, bool) {
	switch n.Get("nodeType").Int() {
	case elementNode:
		return dom.NodeInfo{Kind: vdom.KindElement, Tag: strings.ToLower(n.Get("localName").String())}, true
	case textNode:
		return dom.NodeInfo{Kind: vdom.KindText, Text: n.Get("data").String()}, true
	case commentNode:
		return dom.NodeInfo{Kind: vdom.KindComment, Text: n.Get("data").String()}, true
	default:
		return dom.NodeInfo{}, false
	}
}

func (d *Document) Attributes(n js.Value) []vdom.Attr {
	attrs := n.Get("attributes")
	if attrs.IsUndefined() || attrs.Length() == 0 {
		return nil
	}
	out := make([]vdom.Attr, attrs.Length())
	for i := range out {
		a := attrs.Index(i)
		out[i] = vdom.Attr{Name: a.Get("name").String(), Value: a.Get("value").String()}
	}
	return out
}

func (d *Document) Listener(n js.Value, event string, opts vdom.BindingOptions) (callback.Handle, bool) {
	id, ok := d.nodeID(n, false)
	if !ok {
		return callback.Handle{}, false
	}
	l, ok := d.listeners[id][listenerKey{event, opts}]
	if !ok {
		return callback.Handle{}, false
	}
	return l.handle, true
}

func toEvent(v js.Value) callback.Event {
	ev := callback.Event{Type: v.Get("type").String(), Timestamp: time.Now()}
	if target := v.Get("target"); target.Truthy() {
		if value := target.Get("value"); value.Type() == js.TypeString {
			ev.Value = value.String()
		}
	}
	if key := v.Get("key"); key.Type() == js.TypeString {
		ev.Detail = map[string]string{"key": key.String()}
	}
	if button := v.Get("button"); button.Type() == js.TypeNumber {
		if ev.Detail == nil {
			ev.Detail = make(map[string]string, 1)
		}
		ev.Detail["button"] = strconv.Itoa(button.Int())
	}
	return ev
}
