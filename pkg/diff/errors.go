package diff

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by UpdateChildNodes.
var (
	// ErrStructuralMismatch is returned when the live document no longer has
	// the shape described by the previous tree.
	ErrStructuralMismatch = errors.New("diff: structural mismatch")

	// ErrDepthExceeded is returned when a tree nests deeper than the depth
	// budget of the pass.
	ErrDepthExceeded = errors.New("diff: depth exceeded")
)

// MismatchError describes where the live document diverged from the
// previous tree.
type MismatchError struct {
	Path string // Child index path from the container, e.g. "/0/2"
	Want string // What the previous tree describes
	Got  string // What the live document holds
}

// Error returns the error message.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("diff: structural mismatch at %s: want %s, got %s", e.Path, e.Want, e.Got)
}

// Unwrap returns ErrStructuralMismatch for errors.Is.
func (e *MismatchError) Unwrap() error {
	return ErrStructuralMismatch
}
