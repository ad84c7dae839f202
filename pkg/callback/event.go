package callback

import "time"

// Event is a UI event as delivered by the host document.
type Event struct {
	// Type is the DOM event name ("click", "input", ...).
	Type string

	// Value carries the target's value for form events.
	Value string

	// Detail carries additional host-specific fields (key, button, ...).
	Detail map[string]string

	// Timestamp is when the host observed the event.
	Timestamp time.Time
}

// NewEvent creates an Event of the given type stamped with the current time.
func NewEvent(typ string) Event {
	return Event{Type: typ, Timestamp: time.Now()}
}
