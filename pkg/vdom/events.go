package vdom

// Common event names.
const (
	EventClick     = "click"
	EventDblClick  = "dblclick"
	EventInput     = "input"
	EventChange    = "change"
	EventSubmit    = "submit"
	EventKeyDown   = "keydown"
	EventKeyUp     = "keyup"
	EventFocus     = "focus"
	EventBlur      = "blur"
	EventPointerUp = "pointerup"
	EventScroll    = "scroll"
	EventWheel     = "wheel"
	EventTouchMove = "touchmove"
)

// Passive is the option set for scroll-like listeners that never call
// preventDefault.
var Passive = BindingOptions{Passive: true}

// Capture is the option set for listeners registered in the capture phase.
var Capture = BindingOptions{Capture: true}
