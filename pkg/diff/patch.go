package diff

import (
	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText          PatchOp = 0x01 // Update text or comment content
	PatchSetAttr          PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr       PatchOp = 0x03 // Remove attribute
	PatchAppendNode       PatchOp = 0x04 // Create a subtree and append it
	PatchRemoveNode       PatchOp = 0x05 // Remove node
	PatchReplaceNode      PatchOp = 0x06 // Create a subtree in place of a node
	PatchAddListener      PatchOp = 0x07 // Attach a listener
	PatchRemoveListener   PatchOp = 0x08 // Detach a listener
	PatchRetargetListener PatchOp = 0x09 // Point a listener at a new handle
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchAppendNode:
		return "AppendNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	case PatchAddListener:
		return "AddListener"
	case PatchRemoveListener:
		return "RemoveListener"
	case PatchRetargetListener:
		return "RetargetListener"
	default:
		return "Unknown"
	}
}

// Patch represents a single document operation to apply.
type Patch[N any] struct {
	Op      PatchOp
	Parent  N                   // For AppendNode/RemoveNode/ReplaceNode
	Target  N                   // Live node operated on
	Name    string              // Attribute or event name
	Value   string              // New text or attribute value
	Options vdom.BindingOptions // For listener patches
	Handle  callback.Handle     // For AddListener/RetargetListener
	Node    *vdom.Node          // For AppendNode/ReplaceNode
}
