package el

import (
	"fmt"

	"github.com/vango-dev/frameloop/pkg/arena"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// Elem builds an element with the given tag from mixed arguments.
// Accepted argument types are vdom.Attr, []vdom.Attr, vdom.EventBinding,
// []vdom.EventBinding, vdom.Node, []vdom.Node and string. nil is skipped.
// Any other type panics.
func Elem(a *arena.Arena, tag string, args ...any) vdom.Node {
	var attrBuf [8]vdom.Attr
	var eventBuf [4]vdom.EventBinding
	var childBuf [8]vdom.Node
	attrs, events, children := attrBuf[:0], eventBuf[:0], childBuf[:0]
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case vdom.Attr:
			attrs = append(attrs, v)
		case []vdom.Attr:
			attrs = append(attrs, v...)
		case vdom.EventBinding:
			events = append(events, v)
		case []vdom.EventBinding:
			events = append(events, v...)
		case vdom.Node:
			children = append(children, v)
		case []vdom.Node:
			children = append(children, v...)
		case string:
			children = append(children, a.Text(v))
		default:
			panic(fmt.Sprintf("el: <%s>: unsupported argument of type %T", tag, arg))
		}
	}
	return a.Element(tag, attrs, events, children...)
}

// Group returns children as siblings without a wrapper element.
func Group(a *arena.Arena, children ...vdom.Node) vdom.Node {
	return a.Multi(children...)
}

// Nothing renders nothing.
func Nothing() vdom.Node {
	return vdom.Node{Kind: vdom.KindMulti}
}

// If returns node when cond holds and Nothing otherwise.
func If(cond bool, node vdom.Node) vdom.Node {
	if cond {
		return node
	}
	return Nothing()
}

// IfElse returns ifTrue when cond holds and ifFalse otherwise.
func IfElse(cond bool, ifTrue, ifFalse vdom.Node) vdom.Node {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// When calls fn only when cond holds, so a hidden branch allocates nothing.
func When(cond bool, fn func() vdom.Node) vdom.Node {
	if cond {
		return fn()
	}
	return Nothing()
}

// Range renders one node per item as siblings.
func Range[T any](a *arena.Arena, items []T, fn func(item T, index int) vdom.Node) vdom.Node {
	return vdom.Node{
		Kind: vdom.KindMulti,
		Children: a.NodesSeq(len(items), func(yield func(vdom.Node) bool) {
			for i, item := range items {
				if !yield(fn(item, i)) {
					return
				}
			}
		}),
	}
}
