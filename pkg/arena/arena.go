package arena

import (
	"errors"
	"fmt"
	"iter"
	"unsafe"

	"github.com/vango-dev/frameloop/pkg/vdom"
)

// ErrExhausted is the panic value raised when an allocation would take an
// arena past its configured limit. The render loop recovers it and aborts the
// pass.
var ErrExhausted = errors.New("arena: exhausted")

// Default slab chunk lengths.
const (
	defaultNodeChunk    = 256
	defaultAttrChunk    = 256
	defaultBindingChunk = 64
	defaultByteChunk    = 4096
)

// poisonByte overwrites released text when poisoning is enabled.
const poisonByte = 0xDD

var (
	nodeSize    = int(unsafe.Sizeof(vdom.Node{}))
	attrSize    = int(unsafe.Sizeof(vdom.Attr{}))
	bindingSize = int(unsafe.Sizeof(vdom.EventBinding{}))
)

// Option configures an Arena.
type Option func(*config)

type config struct {
	limit  int
	poison bool
}

// WithLimit caps the bytes an arena may hand out between resets.
// 0 means no limit.
func WithLimit(bytes int) Option {
	return func(c *config) {
		c.limit = bytes
	}
}

// WithPoison makes Reset overwrite released memory so that reads after reset
// are observable. Intended for tests and debugging; it makes Reset O(n).
func WithPoison(poison bool) Option {
	return func(c *config) {
		c.poison = poison
	}
}

// Stats is a snapshot of arena counters.
type Stats struct {
	Epoch    uint64 // Current epoch; advances on every Reset
	Allocs   uint64 // Allocation calls since creation
	Bytes    int    // Bytes handed out since the last reset
	Peak     int    // Highest Bytes observed
	Capacity int    // Bytes held in chunks
	Resets   uint64 // Reset calls
}

// Arena is a region allocator for one frame's virtual tree.
type Arena struct {
	nodes    slab[vdom.Node]
	attrs    slab[vdom.Attr]
	bindings slab[vdom.EventBinding]
	bytes    slab[byte]

	scratch []byte

	config config
	epoch  uint64
	stats  Stats
}

// New creates an empty arena.
func New(opts ...Option) *Arena {
	a := &Arena{
		nodes:    newSlab[vdom.Node](defaultNodeChunk),
		attrs:    newSlab[vdom.Attr](defaultAttrChunk),
		bindings: newSlab[vdom.EventBinding](defaultBindingChunk),
		bytes:    newSlab[byte](defaultByteChunk),
		epoch:    1,
	}
	for _, opt := range opts {
		opt(&a.config)
	}
	return a
}

// Epoch returns the arena's current epoch. A reference obtained under one
// epoch is invalid under any later one.
func (a *Arena) Epoch() uint64 {
	return a.epoch
}

// Reset invalidates every reference handed out since the previous reset.
// The caller must guarantee that none of them is still reachable.
func (a *Arena) Reset() {
	poison := a.config.poison
	a.nodes.reset(poison, vdom.Node{})
	a.attrs.reset(poison, vdom.Attr{})
	a.bindings.reset(poison, vdom.EventBinding{})
	a.bytes.reset(poison, poisonByte)
	a.epoch++
	a.stats.Resets++
	a.stats.Bytes = 0
}

// Release drops all chunks. The arena stays usable and will allocate fresh
// chunks on demand.
func (a *Arena) Release() {
	a.nodes.release()
	a.attrs.release()
	a.bindings.release()
	a.bytes.release()
	a.scratch = nil
	a.epoch++
	a.stats.Bytes = 0
}

// Stats returns a snapshot of the arena counters.
func (a *Arena) Stats() Stats {
	st := a.stats
	st.Epoch = a.epoch
	st.Capacity = a.nodes.capacity()*nodeSize +
		a.attrs.capacity()*attrSize +
		a.bindings.capacity()*bindingSize +
		a.bytes.capacity()
	return st
}

// Owns reports whether n was allocated from this arena since its last reset
// or is still backed by one of its chunks.
func (a *Arena) Owns(n *vdom.Node) bool {
	return a.nodes.owns(n)
}

func (a *Arena) charge(bytes int) {
	a.stats.Allocs++
	a.stats.Bytes += bytes
	if a.config.limit > 0 && a.stats.Bytes > a.config.limit {
		panic(fmt.Errorf("%w: %d bytes requested, limit %d", ErrExhausted, a.stats.Bytes, a.config.limit))
	}
	if a.stats.Bytes > a.stats.Peak {
		a.stats.Peak = a.stats.Bytes
	}
}

// Node allocates a copy of n and returns a reference valid until Reset.
func (a *Arena) Node(n vdom.Node) *vdom.Node {
	a.charge(nodeSize)
	s := a.nodes.alloc(1)
	s[0] = n
	return &s[0]
}

// Nodes allocates a copy of nodes as one contiguous slice.
func (a *Arena) Nodes(nodes ...vdom.Node) []vdom.Node {
	if len(nodes) == 0 {
		return nil
	}
	a.charge(len(nodes) * nodeSize)
	s := a.nodes.alloc(len(nodes))
	copy(s, nodes)
	return s
}

// NodesSeq allocates n nodes filled from seq. seq must yield exactly n
// values; yielding fewer leaves trailing zero nodes, yielding more panics.
func (a *Arena) NodesSeq(n int, seq iter.Seq[vdom.Node]) []vdom.Node {
	if n == 0 {
		return nil
	}
	a.charge(n * nodeSize)
	s := a.nodes.alloc(n)
	i := 0
	for node := range seq {
		if i == n {
			panic("arena: sequence longer than declared length")
		}
		s[i] = node
		i++
	}
	for ; i < n; i++ {
		s[i] = vdom.Node{}
	}
	return s
}

// Attrs allocates a copy of attrs.
func (a *Arena) Attrs(attrs ...vdom.Attr) []vdom.Attr {
	if len(attrs) == 0 {
		return nil
	}
	a.charge(len(attrs) * attrSize)
	s := a.attrs.alloc(len(attrs))
	copy(s, attrs)
	return s
}

// Bindings allocates a copy of bindings.
func (a *Arena) Bindings(bindings ...vdom.EventBinding) []vdom.EventBinding {
	if len(bindings) == 0 {
		return nil
	}
	a.charge(len(bindings) * bindingSize)
	s := a.bindings.alloc(len(bindings))
	copy(s, bindings)
	return s
}

// String copies s into the arena.
func (a *Arena) String(s string) string {
	if len(s) == 0 {
		return ""
	}
	a.charge(len(s))
	b := a.bytes.alloc(len(s))
	copy(b, s)
	return unsafe.String(&b[0], len(b))
}

// Sprintf formats into the arena.
func (a *Arena) Sprintf(format string, args ...any) string {
	a.scratch = fmt.Appendf(a.scratch[:0], format, args...)
	if len(a.scratch) == 0 {
		return ""
	}
	a.charge(len(a.scratch))
	b := a.bytes.alloc(len(a.scratch))
	copy(b, a.scratch)
	return unsafe.String(&b[0], len(b))
}

// Text builds a text node with arena-owned content.
func (a *Arena) Text(content string) vdom.Node {
	return vdom.Node{Kind: vdom.KindText, Text: a.String(content)}
}

// Textf builds a text node with formatted, arena-owned content.
func (a *Arena) Textf(format string, args ...any) vdom.Node {
	return vdom.Node{Kind: vdom.KindText, Text: a.Sprintf(format, args...)}
}

// Comment builds a comment node with arena-owned content.
func (a *Arena) Comment(content string) vdom.Node {
	return vdom.Node{Kind: vdom.KindComment, Text: a.String(content)}
}

// Element builds an element node; attrs, events and children are copied into
// the arena.
func (a *Arena) Element(tag string, attrs []vdom.Attr, events []vdom.EventBinding, children ...vdom.Node) vdom.Node {
	return vdom.Node{
		Kind:     vdom.KindElement,
		Tag:      tag,
		Attrs:    a.Attrs(attrs...),
		Events:   a.Bindings(events...),
		Children: a.Nodes(children...),
	}
}

// Multi builds a run of siblings without a wrapper element.
func (a *Arena) Multi(children ...vdom.Node) vdom.Node {
	return vdom.Node{Kind: vdom.KindMulti, Children: a.Nodes(children...)}
}

// within reports whether p points into c's backing array.
func within[T any](c []T, p *T) bool {
	var zero T
	start := uintptr(unsafe.Pointer(&c[0]))
	end := start + uintptr(len(c))*unsafe.Sizeof(zero)
	addr := uintptr(unsafe.Pointer(p))
	return addr >= start && addr < end
}
