package engine

import "github.com/vango-dev/incr/pkg/native"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText Kind = iota
	KindElement
	KindContainer
	KindView
	KindSlot
	KindSlotable
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindContainer:
		return "Container"
	case KindView:
		return "View"
	case KindSlot:
		return "Slot"
	case KindSlotable:
		return "Slotable"
	default:
		return "Unknown"
	}
}

// VNode is a node of the retained render tree.
type VNode struct {
	kind Kind

	// view is the view whose registry (or sub-view list) holds the node.
	view   *View
	parent *VNode

	// native is the element, text or marker comment. Views and slotables
	// have none.
	native native.Node

	// renderParent is the native parent a View or Slotable is currently
	// grafted into, nil while ungrafted.
	renderParent native.Node

	// children is owned, except for the slotables listed under a Slot.
	children []*VNode

	// data holds binding values, the container counter and directive records.
	data []any

	name string // element tag or slotable name

	// Component hosts.
	factory       ComponentFactory
	instance      any
	componentView *View
	hostView      *View

	// Slotables.
	projectionParent *VNode
	isDefault        bool

	// View nodes.
	embedded *View

	// Include containers.
	includeKey uintptr
}

// Kind returns the node kind.
func (n *VNode) Kind() Kind { return n.kind }

// Parent returns the parent node, nil for a root view node.
func (n *VNode) Parent() *VNode { return n.parent }

// Children returns a copy of the child list.
func (n *VNode) Children() []*VNode {
	out := make([]*VNode, len(n.children))
	copy(out, n.children)
	return out
}

// Native returns the native handle of a Text, Element, Container or Slot.
func (n *VNode) Native() native.Node { return n.native }

// RenderParent returns the native parent a View or Slotable is grafted
// into, or nil.
func (n *VNode) RenderParent() native.Node { return n.renderParent }

// Name returns the tag of an element or the name of a slotable.
func (n *VNode) Name() string { return n.name }

// Instance returns the component or slotable instance, if any.
func (n *VNode) Instance() any { return n.instance }

// ComponentView returns the content view of a component host.
func (n *VNode) ComponentView() *View { return n.componentView }

// ProjectionParent returns the slot a slotable is attached to.
func (n *VNode) ProjectionParent() *VNode { return n.projectionParent }

// IsDefaultContent reports whether n is a component's default slotable.
func (n *VNode) IsDefaultContent() bool { return n.isDefault }

// AsView returns the view a View node stands for.
func (n *VNode) AsView() *View { return n.embedded }

// Binding returns the value recorded at a data slot.
func (n *VNode) Binding(i int) (any, bool) {
	if i < 0 || i >= len(n.data) {
		return nil, false
	}
	if _, ok := n.data[i].(unsetValue); ok {
		return nil, false
	}
	return n.data[i], true
}

func (n *VNode) removeChild(child *VNode) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

func (n *VNode) insertChild(pos int, child *VNode) {
	n.children = append(n.children, nil)
	copy(n.children[pos+1:], n.children[pos:])
	n.children[pos] = child
}
