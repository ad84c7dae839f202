package arena

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

func seedText(text string) func(a *Arena) ([]vdom.Node, error) {
	return func(a *Arena) ([]vdom.Node, error) {
		return a.Nodes(a.Text(text)), nil
	}
}

func TestDoubleBufferCommitSwaps(t *testing.T) {
	b := NewDoubleBuffer(WithPoison(true))
	if err := b.Seed(seedText("initial")); err != nil {
		t.Fatal(err)
	}

	spare := b.Spare()
	active := b.Active()
	next := spare.Nodes(spare.Text("next"))

	prev, err := b.Previous()
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if prev[0].Text != "initial" {
		t.Errorf("prev = %q, want initial", prev[0].Text)
	}

	b.Commit(next)

	if b.Active() != spare || b.Spare() != active {
		t.Error("Commit should swap arena roles")
	}
	got, err := b.Previous()
	if err != nil {
		t.Fatalf("Previous after commit: %v", err)
	}
	if got[0].Text != "next" {
		t.Errorf("Previous = %q, want next", got[0].Text)
	}
	if b.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", b.Frame())
	}
	if active.Stats().Bytes != 0 {
		t.Error("former active arena should be reset")
	}
}

func TestDoubleBufferDiscardKeepsPrevious(t *testing.T) {
	b := NewDoubleBuffer()
	_ = b.Seed(seedText("kept"))

	spare := b.Spare()
	spare.Nodes(spare.Text("aborted"))
	b.Discard()

	prev, err := b.Previous()
	if err != nil {
		t.Fatal(err)
	}
	if prev[0].Text != "kept" {
		t.Errorf("Previous = %q, want kept", prev[0].Text)
	}
	if spare.Stats().Bytes != 0 {
		t.Error("Discard should reset the spare arena")
	}
}

func TestDoubleBufferSeedError(t *testing.T) {
	b := NewDoubleBuffer()
	boom := errors.New("boom")

	err := b.Seed(func(a *Arena) ([]vdom.Node, error) {
		a.Text("partial")
		return nil, boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("Seed error = %v, want boom", err)
	}
}

func TestDoubleBufferStaleAfterOutOfBandReset(t *testing.T) {
	b := NewDoubleBuffer()
	_ = b.Seed(seedText("x"))

	b.Active().Reset()

	if _, err := b.Previous(); !errors.Is(err, ErrStale) {
		t.Fatalf("Previous = %v, want ErrStale", err)
	}
	if b.StaleReads() != 1 {
		t.Errorf("StaleReads = %d, want 1", b.StaleReads())
	}
}

func TestDoubleBufferRelease(t *testing.T) {
	b := NewDoubleBuffer()
	_ = b.Seed(seedText("x"))

	b.Release()
	b.Release()

	if !b.Released() {
		t.Error("Released should report true")
	}
	if _, err := b.Previous(); !errors.Is(err, ErrStale) {
		t.Errorf("Previous after release = %v, want ErrStale", err)
	}
}

func TestDoubleBufferCommitForeignTreePanics(t *testing.T) {
	b := NewDoubleBuffer(WithPoison(true))
	_ = b.Seed(seedText("x"))

	defer func() {
		if recover() == nil {
			t.Error("committing a tree from the active arena should panic in checked mode")
		}
	}()
	b.Commit(b.Active().Nodes(vdom.Text("wrong arena")))
}

// Random interleavings of frame commits and aborted frames never make the
// committed tree unreadable, and the committed content is always that of the
// last successful frame.
func TestDoubleBufferLifetimeProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("previous is never stale", prop.ForAll(
		func(ops []bool) bool {
			b := NewDoubleBuffer(WithPoison(true))
			_ = b.Seed(seedText("0"))
			want := "0"

			for i, commit := range ops {
				spare := b.Spare()
				text := spare.Sprintf("%d", i+1)
				next := spare.Nodes(spare.Text(text))

				prev, err := b.Previous()
				if err != nil || prev[0].Text != want {
					return false
				}

				if commit {
					want = next[0].Text
					b.Commit(next)
				} else {
					b.Discard()
				}
			}

			prev, err := b.Previous()
			return err == nil && prev[0].Text == want && b.StaleReads() == 0
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
