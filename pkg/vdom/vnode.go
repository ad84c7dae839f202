package vdom

import "github.com/vango-dev/frameloop/pkg/callback"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText    Kind = iota // Text content
	KindElement             // <p>, <button>, etc.
	KindComment             // <!-- ... -->
	KindMulti               // Siblings without a wrapper
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComment:
		return "Comment"
	case KindMulti:
		return "Multi"
	default:
		return "Unknown"
	}
}

// Node is a virtual tree node.
type Node struct {
	Kind     Kind           // Node type
	Tag      string         // Element tag name, lower case
	Text     string         // For KindText and KindComment
	Attrs    []Attr         // Ordered attributes
	Children []Node         // Child nodes
	Events   []EventBinding // Event listeners
}

// Attr is a single attribute.
type Attr struct {
	Name  string
	Value string
}

// BindingOptions are the listener options passed to the host.
type BindingOptions struct {
	Capture bool
	Passive bool
}

// EventBinding attaches a registry entry to an element event.
type EventBinding struct {
	Event   string
	Options BindingOptions
	Handle  callback.Handle
}

// Matches reports whether b and other listen to the same event with the same
// options. Matching bindings can be retargeted without touching the document.
func (b EventBinding) Matches(other EventBinding) bool {
	return b.Event == other.Event && b.Options == other.Options
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Binding returns the binding for event, if any.
func (n *Node) Binding(event string) (EventBinding, bool) {
	for _, b := range n.Events {
		if b.Event == event {
			return b, true
		}
	}
	return EventBinding{}, false
}
