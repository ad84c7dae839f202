package dom

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

type listenerKey struct {
	event string
	opts  vdom.BindingOptions
}

// Headless is an in-memory document backed by golang.org/x/net/html nodes.
// It records every primitive it executes so that callers can assert on the
// exact work a render pass did.
type Headless struct {
	root       *html.Node
	listeners  map[*html.Node]map[listenerKey]callback.Handle
	dispatcher Dispatcher

	counts  Counts
	journal []Mutation
	record  bool
	logger  *slog.Logger
}

var _ Document[*html.Node] = (*Headless)(nil)

// HeadlessOption configures a Headless document.
type HeadlessOption func(*Headless)

// WithJournal enables the mutation journal.
func WithJournal(enabled bool) HeadlessOption {
	return func(h *Headless) {
		h.record = enabled
	}
}

// WithLogger sets the logger used for dispatch failures.
func WithLogger(logger *slog.Logger) HeadlessOption {
	return func(h *Headless) {
		h.logger = logger
	}
}

// NewHeadless creates an empty document with html, head and body elements.
func NewHeadless(opts ...HeadlessOption) *Headless {
	h := &Headless{
		listeners: make(map[*html.Node]map[listenerKey]callback.Handle),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	// Parsing an empty string cannot fail; it yields the implied skeleton.
	h.root, _ = html.Parse(strings.NewReader(""))
	return h
}

// Parse replaces the document with markup and returns its body element.
func (h *Headless) Parse(markup string) (*html.Node, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	h.root = root
	clear(h.listeners)
	return h.Body(), nil
}

// Root returns the document node.
func (h *Headless) Root() *html.Node {
	return h.root
}

// Body returns the body element.
func (h *Headless) Body() *html.Node {
	return h.find(func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
}

// ByID returns the element whose id attribute is id, or nil.
func (h *Headless) ByID(id string) *html.Node {
	return h.find(func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return true
			}
		}
		return false
	})
}

func (h *Headless) find(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if match(n) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(h.root)
	return found
}

// SetDispatcher routes fired events to d.
func (h *Headless) SetDispatcher(d Dispatcher) {
	h.dispatcher = d
}

// Counts returns the operation counters.
func (h *Headless) Counts() Counts {
	return h.counts
}

// Journal returns the recorded mutations in order.
func (h *Headless) Journal() []Mutation {
	return h.journal
}

// ResetCounts clears the counters and the journal.
func (h *Headless) ResetCounts() {
	h.counts = Counts{}
	h.journal = h.journal[:0]
}

// log counts op and records it in the journal. name and value must already be
// owned by the document.
func (h *Headless) log(op Op, n *html.Node, name, value string) {
	h.counts.add(op)
	if h.record {
		h.journal = append(h.journal, Mutation{Op: op, Target: label(n), Name: name, Value: value})
	}
}

// label returns a short description such as "<p>" or "#text".
func label(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return "<" + n.Data + ">"
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	default:
		return "#node"
	}
}

func (h *Headless) CreateElement(tag string) *html.Node {
	tag = strings.Clone(tag)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	h.log(OpCreate, n, "", "")
	return n
}

func (h *Headless) CreateText(text string) *html.Node {
	n := &html.Node{Type: html.TextNode, Data: strings.Clone(text)}
	h.log(OpCreate, n, "", "")
	return n
}

func (h *Headless) CreateComment(text string) *html.Node {
	n := &html.Node{Type: html.CommentNode, Data: strings.Clone(text)}
	h.log(OpCreate, n, "", "")
	return n
}

func (h *Headless) SetText(n *html.Node, text string) {
	n.Data = strings.Clone(text)
	h.log(OpSetText, n, "", n.Data)
}

func (h *Headless) SetAttribute(n *html.Node, name, value string) {
	name, value = strings.Clone(name), strings.Clone(value)
	h.log(OpSetAttribute, n, name, value)
	for i := range n.Attr {
		if n.Attr[i].Key == name && n.Attr[i].Namespace == "" {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func (h *Headless) RemoveAttribute(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name && n.Attr[i].Namespace == "" {
			key := n.Attr[i].Key
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			h.log(OpRemoveAttribute, n, key, "")
			return
		}
	}
}

func (h *Headless) AppendChild(parent, child *html.Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
	h.log(OpAppendChild, parent, "", label(child))
}

func (h *Headless) ReplaceChild(parent, newChild, oldChild *html.Node) {
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	parent.InsertBefore(newChild, oldChild)
	parent.RemoveChild(oldChild)
	h.forget(oldChild)
	h.log(OpReplaceChild, parent, "", label(newChild))
}

func (h *Headless) RemoveChild(parent, child *html.Node) {
	parent.RemoveChild(child)
	h.forget(child)
	h.log(OpRemoveChild, parent, "", label(child))
}

// forget drops the listeners of a detached subtree.
func (h *Headless) forget(n *html.Node) {
	delete(h.listeners, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		h.forget(c)
	}
}

func (h *Headless) AddEventListener(n *html.Node, event string, opts vdom.BindingOptions, handle callback.Handle) {
	set := h.listeners[n]
	if set == nil {
		set = make(map[listenerKey]callback.Handle)
		h.listeners[n] = set
	}
	event = strings.Clone(event)
	set[listenerKey{event, opts}] = handle
	h.log(OpAddListener, n, event, handle.String())
}

func (h *Headless) RemoveEventListener(n *html.Node, event string, opts vdom.BindingOptions) {
	set := h.listeners[n]
	key := listenerKey{event, opts}
	if _, ok := set[key]; !ok {
		return
	}
	delete(set, key)
	if len(set) == 0 {
		delete(h.listeners, n)
	}
	h.log(OpRemoveListener, n, strings.Clone(event), "")
}

func (h *Headless) RetargetEventListener(n *html.Node, event string, opts vdom.BindingOptions, handle callback.Handle) {
	set := h.listeners[n]
	key := listenerKey{event, opts}
	if _, ok := set[key]; !ok {
		h.AddEventListener(n, event, opts, handle)
		return
	}
	set[key] = handle
	h.log(OpRetargetListener, n, strings.Clone(event), handle.String())
}

func (h *Headless) ChildNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func (h *Headless) Describe(n *html.Node) (NodeInfo, bool) {
	switch n.Type {
	case html.ElementNode:
		return NodeInfo{Kind: vdom.KindElement, Tag: n.Data}, true
	case html.TextNode:
		return NodeInfo{Kind: vdom.KindText, Text: n.Data}, true
	case html.CommentNode:
		return NodeInfo{Kind: vdom.KindComment, Text: n.Data}, true
	default:
		return NodeInfo{}, false
	}
}

func (h *Headless) Attributes(n *html.Node) []vdom.Attr {
	if len(n.Attr) == 0 {
		return nil
	}
	out := make([]vdom.Attr, 0, len(n.Attr))
	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		out = append(out, vdom.Attr{Name: name, Value: a.Val})
	}
	return out
}

func (h *Headless) Listener(n *html.Node, event string, opts vdom.BindingOptions) (callback.Handle, bool) {
	handle, ok := h.listeners[n][listenerKey{event, opts}]
	return handle, ok
}

// ListenerCount returns the number of attached listeners in the document.
func (h *Headless) ListenerCount() int {
	total := 0
	for _, set := range h.listeners {
		total += len(set)
	}
	return total
}

// Fire delivers ev to target the way a browser would: capture listeners from
// the root down, then the target's listeners, then bubbling listeners back
// up. It returns the number of listeners invoked and the joined handler
// errors. Without a dispatcher nothing is invoked.
func (h *Headless) Fire(target *html.Node, ev callback.Event) (int, error) {
	if h.dispatcher == nil {
		return 0, nil
	}

	var path []*html.Node
	for n := target.Parent; n != nil; n = n.Parent {
		path = append(path, n)
	}

	// Snapshot the handles first: a handler may schedule work that changes
	// the listener table.
	var handles []callback.Handle
	for i := len(path) - 1; i >= 0; i-- {
		if handle, ok := h.listeners[path[i]][listenerKey{ev.Type, vdom.Capture}]; ok {
			handles = append(handles, handle)
		}
	}
	for key, handle := range h.listeners[target] {
		if key.event == ev.Type {
			handles = append(handles, handle)
		}
	}
	for _, n := range path {
		for key, handle := range h.listeners[n] {
			if key.event == ev.Type && !key.opts.Capture {
				handles = append(handles, handle)
			}
		}
	}

	var errs []error
	for _, handle := range handles {
		if err := h.dispatcher.Dispatch(handle, ev); err != nil {
			h.logger.Error("dom: listener failed", "event", ev.Type, "handle", handle.String(), "error", err)
			errs = append(errs, err)
		}
	}
	return len(handles), errors.Join(errs...)
}

// Click fires a click event on target.
func (h *Headless) Click(target *html.Node) (int, error) {
	return h.Fire(target, callback.NewEvent(vdom.EventClick))
}

// HTML renders n and its subtree.
func (h *Headless) HTML(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// InnerHTML renders the children of n.
func (h *Headless) InnerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return ""
		}
	}
	return sb.String()
}
