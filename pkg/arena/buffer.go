package arena

import (
	"errors"

	"github.com/vango-dev/frameloop/pkg/vdom"
)

// ErrStale is returned by Previous when the committed tree's arena has been
// reset or released since the tree was committed.
var ErrStale = errors.New("arena: previous tree is stale")

// DoubleBuffer owns two arenas: active backs the displayed tree, spare
// receives the next one.
type DoubleBuffer struct {
	active *Arena
	spare  *Arena

	previous []vdom.Node
	epoch    uint64 // active.Epoch() at the time previous was committed

	frame      uint64
	staleReads uint64
	checked    bool
}

// NewDoubleBuffer creates a double buffer whose arenas share opts.
func NewDoubleBuffer(opts ...Option) *DoubleBuffer {
	a := New(opts...)
	return &DoubleBuffer{
		active:  a,
		spare:   New(opts...),
		epoch:   a.Epoch(),
		checked: a.config.poison,
	}
}

// Seed builds the baseline tree in the active arena. It is used once, at
// attach time, to mirror the live container.
func (b *DoubleBuffer) Seed(build func(a *Arena) ([]vdom.Node, error)) error {
	b.active.Reset()
	nodes, err := build(b.active)
	if err != nil {
		b.active.Reset()
		return err
	}
	b.previous = nodes
	b.epoch = b.active.Epoch()
	return nil
}

// Previous returns the tree displayed by the last committed frame.
func (b *DoubleBuffer) Previous() ([]vdom.Node, error) {
	if b.active == nil || b.active.Epoch() != b.epoch {
		b.staleReads++
		return nil, ErrStale
	}
	return b.previous, nil
}

// Spare returns the arena the next frame must be built in.
func (b *DoubleBuffer) Spare() *Arena {
	return b.spare
}

// Active returns the arena backing the displayed tree.
func (b *DoubleBuffer) Active() *Arena {
	return b.active
}

// Commit makes next, built in the spare arena, the displayed tree. The
// former active arena is reset and becomes the spare. Commit must only be
// called once nothing reads the previous tree any more.
func (b *DoubleBuffer) Commit(next []vdom.Node) {
	if b.checked && len(next) > 0 && !b.spare.Owns(&next[0]) {
		panic("arena: committed tree is not owned by the spare arena")
	}
	b.previous = next
	b.active.Reset()
	b.active, b.spare = b.spare, b.active
	b.epoch = b.active.Epoch()
	b.frame++
}

// Discard resets the spare arena after an aborted frame. The displayed tree
// is left untouched.
func (b *DoubleBuffer) Discard() {
	b.spare.Reset()
}

// Release drops both arenas. Previous reports ErrStale afterwards.
func (b *DoubleBuffer) Release() {
	if b.active == nil {
		return
	}
	b.previous = nil
	b.active.Release()
	b.spare.Release()
	b.active = nil
	b.spare = nil
}

// Released reports whether Release has been called.
func (b *DoubleBuffer) Released() bool {
	return b.active == nil
}

// Frame returns the number of committed frames.
func (b *DoubleBuffer) Frame() uint64 {
	return b.frame
}

// StaleReads returns how many times Previous was asked for a tree whose
// arena had already been reset.
func (b *DoubleBuffer) StaleReads() uint64 {
	return b.staleReads
}
