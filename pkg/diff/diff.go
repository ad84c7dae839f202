package diff

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// DefaultDepth is the default depth budget of a pass.
const DefaultDepth = 20

// Stats counts the work done by a Differ.
type Stats struct {
	Passes    uint64 // Successful UpdateChildNodes calls
	Failed    uint64 // Passes rejected during planning
	Patches   uint64 // Patches applied
	Created   uint64 // Nodes created for appended or replaced subtrees
	Retargets uint64 // Listeners retargeted in place
	LastPass  int    // Patches applied by the most recent pass
	ByOp      [PatchRetargetListener + 1]uint64
}

// Differ reconciles live children of a document with virtual trees.
// A Differ is not safe for concurrent use.
type Differ[N any] struct {
	doc     dom.Document[N]
	patches []Patch[N]
	stats   Stats
}

// New creates a Differ that drives doc.
func New[N any](doc dom.Document[N]) *Differ[N] {
	return &Differ[N]{doc: doc}
}

// Stats returns a snapshot of the counters.
func (d *Differ[N]) Stats() Stats {
	return d.stats
}

// UpdateChildNodes makes the live children of parent match next, given that
// they currently match prev. depth bounds how many levels of child lists the
// pass may descend. On error the document has not been modified.
func (d *Differ[N]) UpdateChildNodes(parent N, prev, next []vdom.Node, depth int) error {
	patches, err := d.Plan(parent, prev, next, depth)
	if err != nil {
		d.stats.Failed++
		return err
	}
	d.Apply(patches)
	d.stats.Passes++
	return nil
}

// Plan computes the patches that turn prev into next under parent without
// touching the document. The returned slice is reused by the next call.
func (d *Differ[N]) Plan(parent N, prev, next []vdom.Node, depth int) ([]Patch[N], error) {
	d.patches = d.patches[:0]
	if err := d.planChildren(parent, prev, next, depth, ""); err != nil {
		d.patches = d.patches[:0]
		return nil, err
	}
	return d.patches, nil
}

func (d *Differ[N]) emit(p Patch[N]) {
	d.patches = append(d.patches, p)
}

func (d *Differ[N]) planChildren(parent N, prev, next []vdom.Node, depth int, path string) error {
	prev = flatten(prev)
	next = flatten(next)
	if len(prev) == 0 && len(next) == 0 {
		return nil
	}
	if depth < 1 {
		return fmt.Errorf("%w at %s", ErrDepthExceeded, pathOrRoot(path))
	}

	live := d.doc.ChildNodes(parent)
	if len(live) != len(prev) {
		return &MismatchError{
			Path: pathOrRoot(path),
			Want: strconv.Itoa(len(prev)) + " children",
			Got:  strconv.Itoa(len(live)) + " children",
		}
	}
	for i := range prev {
		if err := d.verify(live[i], &prev[i], path+"/"+strconv.Itoa(i)); err != nil {
			return err
		}
	}

	common := min(len(prev), len(next))
	for i := 0; i < common; i++ {
		childPath := path + "/" + strconv.Itoa(i)
		if err := d.planNode(parent, live[i], &prev[i], &next[i], depth, childPath); err != nil {
			return err
		}
	}
	for i := common; i < len(next); i++ {
		if h := height(&next[i]); h > depth {
			return fmt.Errorf("%w at %s/%d", ErrDepthExceeded, path, i)
		}
		d.emit(Patch[N]{Op: PatchAppendNode, Parent: parent, Node: &next[i]})
	}
	for i := len(prev) - 1; i >= common; i-- {
		d.emit(Patch[N]{Op: PatchRemoveNode, Parent: parent, Target: live[i]})
	}
	return nil
}

// verify checks that a live node still has the kind and tag of its previous
// virtual node.
func (d *Differ[N]) verify(live N, prev *vdom.Node, path string) error {
	info, ok := d.doc.Describe(live)
	if !ok {
		return &MismatchError{Path: path, Want: describe(prev), Got: "unsupported node"}
	}
	if info.Kind != prev.Kind || (info.Kind == vdom.KindElement && info.Tag != prev.Tag) {
		return &MismatchError{Path: path, Want: describe(prev), Got: describeInfo(info)}
	}
	return nil
}

func (d *Differ[N]) planNode(parent, live N, prev, next *vdom.Node, depth int, path string) error {
	if prev.Kind != next.Kind || prev.Tag != next.Tag {
		if h := height(next); h > depth {
			return fmt.Errorf("%w at %s", ErrDepthExceeded, path)
		}
		d.emit(Patch[N]{Op: PatchReplaceNode, Parent: parent, Target: live, Node: next})
		return nil
	}

	switch next.Kind {
	case vdom.KindText, vdom.KindComment:
		if prev.Text != next.Text {
			d.emit(Patch[N]{Op: PatchSetText, Target: live, Value: next.Text})
		}
		return nil
	case vdom.KindElement:
		d.planAttrs(live, prev.Attrs, next.Attrs)
		d.planEvents(live, prev.Events, next.Events)
		return d.planChildren(live, prev.Children, next.Children, depth-1, path)
	}
	return nil
}

// planAttrs sets changed and added attributes in next's order, then removes
// attributes that next no longer carries.
func (d *Differ[N]) planAttrs(live N, prev, next []vdom.Attr) {
	for _, a := range next {
		if v, ok := lookupAttr(prev, a.Name); ok && v == a.Value {
			continue
		}
		d.emit(Patch[N]{Op: PatchSetAttr, Target: live, Name: a.Name, Value: a.Value})
	}
	for _, a := range prev {
		if _, ok := lookupAttr(next, a.Name); !ok {
			d.emit(Patch[N]{Op: PatchRemoveAttr, Target: live, Name: a.Name})
		}
	}
}

func (d *Differ[N]) planEvents(live N, prev, next []vdom.EventBinding) {
	for _, b := range next {
		old, ok := matchBinding(prev, b)
		switch {
		case !ok:
			d.emit(Patch[N]{Op: PatchAddListener, Target: live, Name: b.Event, Options: b.Options, Handle: b.Handle})
		case old.Handle != b.Handle:
			d.emit(Patch[N]{Op: PatchRetargetListener, Target: live, Name: b.Event, Options: b.Options, Handle: b.Handle})
		}
	}
	for _, b := range prev {
		if _, ok := matchBinding(next, b); !ok {
			d.emit(Patch[N]{Op: PatchRemoveListener, Target: live, Name: b.Event, Options: b.Options})
		}
	}
}

// Apply executes patches in order through the document primitives.
func (d *Differ[N]) Apply(patches []Patch[N]) {
	for i := range patches {
		p := &patches[i]
		switch p.Op {
		case PatchSetText:
			d.doc.SetText(p.Target, p.Value)
		case PatchSetAttr:
			d.doc.SetAttribute(p.Target, p.Name, p.Value)
		case PatchRemoveAttr:
			d.doc.RemoveAttribute(p.Target, p.Name)
		case PatchAppendNode:
			d.doc.AppendChild(p.Parent, d.create(p.Node))
		case PatchRemoveNode:
			d.doc.RemoveChild(p.Parent, p.Target)
		case PatchReplaceNode:
			d.doc.ReplaceChild(p.Parent, d.create(p.Node), p.Target)
		case PatchAddListener:
			d.doc.AddEventListener(p.Target, p.Name, p.Options, p.Handle)
		case PatchRemoveListener:
			d.doc.RemoveEventListener(p.Target, p.Name, p.Options)
		case PatchRetargetListener:
			d.doc.RetargetEventListener(p.Target, p.Name, p.Options, p.Handle)
			d.stats.Retargets++
		}
		if int(p.Op) < len(d.stats.ByOp) {
			d.stats.ByOp[p.Op]++
		}
	}
	d.stats.Patches += uint64(len(patches))
	d.stats.LastPass = len(patches)
}

// create builds the live counterpart of n, which is never KindMulti.
func (d *Differ[N]) create(n *vdom.Node) N {
	d.stats.Created++
	switch n.Kind {
	case vdom.KindText:
		return d.doc.CreateText(n.Text)
	case vdom.KindComment:
		return d.doc.CreateComment(n.Text)
	}

	el := d.doc.CreateElement(n.Tag)
	for _, a := range n.Attrs {
		d.doc.SetAttribute(el, a.Name, a.Value)
	}
	for _, b := range n.Events {
		d.doc.AddEventListener(el, b.Event, b.Options, b.Handle)
	}
	children := flatten(n.Children)
	for i := range children {
		d.doc.AppendChild(el, d.create(&children[i]))
	}
	return el
}

// flatten splices KindMulti children in place. It returns nodes unchanged
// when there is nothing to splice.
func flatten(nodes []vdom.Node) []vdom.Node {
	for i := range nodes {
		if nodes[i].Kind == vdom.KindMulti {
			return vdom.Flatten(make([]vdom.Node, 0, len(nodes)), nodes)
		}
	}
	return nodes
}

// height returns how many levels of child lists n spans, counting its own
// level.
func height(n *vdom.Node) int {
	if n.Kind == vdom.KindMulti {
		h := 0
		for i := range n.Children {
			h = max(h, height(&n.Children[i]))
		}
		return h
	}
	h := 0
	for i := range n.Children {
		h = max(h, height(&n.Children[i]))
	}
	return 1 + h
}

func lookupAttr(attrs []vdom.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func matchBinding(bindings []vdom.EventBinding, b vdom.EventBinding) (vdom.EventBinding, bool) {
	for _, other := range bindings {
		if other.Matches(b) {
			return other, true
		}
	}
	return vdom.EventBinding{}, false
}

func describe(n *vdom.Node) string {
	switch n.Kind {
	case vdom.KindElement:
		return "<" + n.Tag + ">"
	case vdom.KindText:
		return "#text"
	case vdom.KindComment:
		return "#comment"
	default:
		return n.Kind.String()
	}
}

func describeInfo(info dom.NodeInfo) string {
	return describe(&vdom.Node{Kind: info.Kind, Tag: info.Tag})
}

func pathOrRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
