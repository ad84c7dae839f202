package callback

import "fmt"

// HandlerError wraps a panic that occurred in an event handler.
type HandlerError struct {
	Handle Handle
	Event  string
	Panic  any
	Stack  []byte
}

// Error returns the error message.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("callback: handler panic on %s, event %s: %v", e.Handle, e.Event, e.Panic)
}
