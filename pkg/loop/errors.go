package loop

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Render and Detach.
var (
	// ErrRenderInProgress is returned when Render or Detach is called while a
	// render is running, typically from inside a view.
	ErrRenderInProgress = errors.New("loop: render in progress")

	// ErrDetached is returned when Render is called on a detached loop.
	ErrDetached = errors.New("loop: detached")
)

// RenderError reports an aborted render pass. The previously displayed frame
// is still displayed and its handlers are still live.
type RenderError struct {
	Frame uint64 // Frame number the pass would have produced
	Op    string // Phase that failed: "view", "diff" or "previous"
	Err   error  // Underlying error
}

// Error returns the error message with frame context.
func (e *RenderError) Error() string {
	return fmt.Sprintf("loop: frame %d: %s: %v", e.Frame, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic raised by a view.
type PanicError struct {
	Value any
	Stack []byte
}

// Error returns the error message.
func (e *PanicError) Error() string {
	return fmt.Sprintf("view panic: %v", e.Value)
}
