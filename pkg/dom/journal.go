package dom

import "fmt"

// Op is a document operation recorded by the headless document.
type Op uint8

const (
	OpCreate Op = iota
	OpSetText
	OpSetAttribute
	OpRemoveAttribute
	OpAppendChild
	OpReplaceChild
	OpRemoveChild
	OpAddListener
	OpRemoveListener
	OpRetargetListener
)

var opNames = [...]string{
	OpCreate:           "create",
	OpSetText:          "set-text",
	OpSetAttribute:     "set-attribute",
	OpRemoveAttribute:  "remove-attribute",
	OpAppendChild:      "append-child",
	OpReplaceChild:     "replace-child",
	OpRemoveChild:      "remove-child",
	OpAddListener:      "add-listener",
	OpRemoveListener:   "remove-listener",
	OpRetargetListener: "retarget-listener",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Mutation is one journal entry.
type Mutation struct {
	Op     Op
	Target string // short description of the node operated on
	Name   string // attribute or event name
	Value  string // new text, attribute value or handle
}

func (m Mutation) String() string {
	switch {
	case m.Name != "" && m.Value != "":
		return fmt.Sprintf("%s %s %s=%q", m.Op, m.Target, m.Name, m.Value)
	case m.Name != "":
		return fmt.Sprintf("%s %s %s", m.Op, m.Target, m.Name)
	case m.Value != "":
		return fmt.Sprintf("%s %s %q", m.Op, m.Target, m.Value)
	default:
		return fmt.Sprintf("%s %s", m.Op, m.Target)
	}
}

// Counts tallies document operations by kind.
type Counts struct {
	Created          int
	TextSet          int
	AttrSet          int
	AttrRemoved      int
	Appended         int
	Replaced         int
	Removed          int
	ListenersAdded   int
	ListenersRemoved int
	Retargeted       int
}

// Mutations returns the number of operations that changed the document.
// Listener retargets are not mutations: the listener set is unchanged.
func (c Counts) Mutations() int {
	return c.Created + c.TextSet + c.AttrSet + c.AttrRemoved +
		c.Appended + c.Replaced + c.Removed +
		c.ListenersAdded + c.ListenersRemoved
}

func (c *Counts) add(op Op) {
	switch op {
	case OpCreate:
		c.Created++
	case OpSetText:
		c.TextSet++
	case OpSetAttribute:
		c.AttrSet++
	case OpRemoveAttribute:
		c.AttrRemoved++
	case OpAppendChild:
		c.Appended++
	case OpReplaceChild:
		c.Replaced++
	case OpRemoveChild:
		c.Removed++
	case OpAddListener:
		c.ListenersAdded++
	case OpRemoveListener:
		c.ListenersRemoved++
	case OpRetargetListener:
		c.Retargeted++
	}
}
