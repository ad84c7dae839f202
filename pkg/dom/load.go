package dom

import (
	"errors"
	"fmt"

	"github.com/vango-dev/frameloop/pkg/arena"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// ErrUnsupportedNode is returned by Load for live nodes that have no virtual
// tree counterpart, such as doctypes.
var ErrUnsupportedNode = errors.New("dom: unsupported node")

// Load mirrors the live children of container into a virtual tree allocated
// from a. The result is the baseline the first render is diffed against.
// Listeners are not mirrored; live nodes carry none until the first render
// attaches them.
func Load[N any](doc Document[N], container N, a *arena.Arena) ([]vdom.Node, error) {
	return loadChildren(doc, container, a, "")
}

func loadChildren[N any](doc Document[N], parent N, a *arena.Arena, path string) ([]vdom.Node, error) {
	live := doc.ChildNodes(parent)
	if len(live) == 0 {
		return nil, nil
	}
	nodes := make([]vdom.Node, len(live))
	for i, n := range live {
		info, ok := doc.Describe(n)
		if !ok {
			return nil, fmt.Errorf("%w at %s/%d", ErrUnsupportedNode, path, i)
		}
		switch info.Kind {
		case vdom.KindText:
			nodes[i] = a.Text(info.Text)
		case vdom.KindComment:
			nodes[i] = a.Comment(info.Text)
		case vdom.KindElement:
			children, err := loadChildren(doc, n, a, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			nodes[i] = vdom.Node{
				Kind:     vdom.KindElement,
				Tag:      a.String(info.Tag),
				Attrs:    loadAttrs(a, doc.Attributes(n)),
				Children: children,
			}
		}
	}
	return a.Nodes(nodes...), nil
}

func loadAttrs(a *arena.Arena, attrs []vdom.Attr) []vdom.Attr {
	for i := range attrs {
		attrs[i] = vdom.Attr{Name: a.String(attrs[i].Name), Value: a.String(attrs[i].Value)}
	}
	return a.Attrs(attrs...)
}
