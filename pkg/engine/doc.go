// Package engine is the retained-mode rendering core of incr.
//
// A compiled template is a Go function that issues instructions against a
// Renderer. On the first pass it runs with Create|Update and builds the node
// tree; later passes run with Update alone and only touch the native surface
// where a bound value changed.
//
//	func hello(r *engine.Renderer, flags engine.Flags, ctx any) {
//	    if flags.Has(engine.Create) {
//	        r.Text(0, "Hello, ")
//	        r.Text(1, "")
//	    }
//	    if flags.Has(engine.Update) {
//	        r.BindText(1, ctx.(string))
//	    }
//	}
//
//	r, err := engine.Render(doc, body, hello, "World")
//	...
//	err = r.RefreshWith("New World")
//
// # Node model
//
// VNode is a closed sum over six kinds: Text, Element, Container, View,
// Slot and Slotable. Every View owns a registry of nodes addressed by the
// compiler-assigned index passed to each instruction.
//
// # Containers
//
// Conditional and repeated content lives in containers. View reconciles the
// container's child views by caller-supplied id; ContainerRefreshEnd drops
// whatever the pass did not revisit. Include swaps a single child keyed by
// template identity.
//
// # Components, directives and projection
//
// ComponentStart/ComponentEnd wrap an instance with its own view rooted at
// the host element. Content authored between them becomes the default
// slotable and may be split into named slotables, which the component
// projects into its slots with SlotRefresh or SlotRefreshImperative.
// Directive attaches behaviour and host bindings to an existing element.
//
// # Errors
//
// Instruction-sequence faults (unknown index, wrong node kind, broken
// projection bookkeeping) abort the pass. Render, Refresh and Destroy return
// them as *errors.EngineError; the tree keeps whatever state the pass
// reached.
//
// A Renderer is not safe for concurrent use.
package engine
