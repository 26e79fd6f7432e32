// Package native defines the capability set the engine needs from a
// rendering surface.
//
// The engine never inspects native nodes; it only passes the opaque handles
// a Document returns back into the same Document. Implementations include
// the in-memory document in pkg/dom and any browser or toolkit bridge that
// can satisfy the interface.
package native

// Node is an opaque handle to a native element, text node or comment.
type Node any

// Event is delivered to listeners registered with AddEventListener.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Target is the node the event was dispatched on.
	Target Node

	// Detail carries event specific data (input value, key, ...).
	Detail any
}

// Listener handles a dispatched event.
type Listener func(Event)

// Document is the native adapter surface.
type Document interface {
	CreateElement(tag string) Node
	CreateText(text string) Node
	CreateComment(text string) Node

	AppendChild(parent, child Node)
	// InsertBefore inserts child into parent before ref. A nil ref appends.
	InsertBefore(parent, child, ref Node)
	RemoveChild(parent, child Node)
	// NextSibling returns the node following n under its parent, or nil.
	NextSibling(n Node) Node

	SetAttribute(el Node, name, value string)
	AddClass(el Node, class string)
	RemoveClass(el Node, class string)
	ToggleClass(el Node, class string, on bool)
	ReplaceClass(el Node, oldClass, newClass string)
	SetProperty(el Node, name string, value any)
	SetText(n Node, text string)

	AddEventListener(el Node, event string, fn Listener)
}
