package vdom

import "fmt"

// Text creates a text node.
func Text(content string) Node {
	return Node{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) Node {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(content string) Node {
	return Node{Kind: KindComment, Text: content}
}

// Elem creates an element node.
func Elem(tag string, attrs []Attr, events []EventBinding, children ...Node) Node {
	return Node{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Events:   events,
		Children: children,
	}
}

// Multi groups siblings without a wrapper element.
func Multi(children ...Node) Node {
	return Node{Kind: KindMulti, Children: children}
}

// Attrs is a convenience for building an attribute list inline.
func Attrs(attrs ...Attr) []Attr {
	return attrs
}

// Flatten appends nodes to dst, splicing the children of KindMulti nodes in
// place, recursively.
func Flatten(dst []Node, nodes []Node) []Node {
	for i := range nodes {
		if nodes[i].Kind == KindMulti {
			dst = Flatten(dst, nodes[i].Children)
			continue
		}
		dst = append(dst, nodes[i])
	}
	return dst
}

// Walk calls fn for every node in the tree rooted at n, depth first.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := range n.Children {
		Walk(&n.Children[i], fn)
	}
}

// Count returns the number of nodes in the tree, including n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node) bool {
		count++
		return true
	})
	return count
}

// CountBindings returns the number of event bindings in the tree.
func CountBindings(n *Node) int {
	count := 0
	Walk(n, func(node *Node) bool {
		count += len(node.Events)
		return true
	})
	return count
}

// Equal reports whether two trees describe the same structure.
// Binding handles are ignored; only event names and options are compared.
func Equal(a, b *Node) bool {
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Events) != len(b.Events) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Events {
		if !a.Events[i].Matches(b.Events[i]) {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(&a.Children[i], &b.Children[i]) {
			return false
		}
	}
	return true
}
