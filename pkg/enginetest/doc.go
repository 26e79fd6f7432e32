// Package enginetest provides testing helpers for templates rendered by the
// engine.
//
// A Harness renders a template into an in-memory document and exposes
// assertions over the serialized output and the mutations a pass applied.
//
// # Quick Start
//
//	func TestGreeting(t *testing.T) {
//	    h := enginetest.New(t, greeting, "World")
//	    h.ExpectHTML(t, "Hello, World")
//
//	    h.RefreshWith(t, "New World")
//	    h.ExpectHTML(t, "Hello, New World")
//	}
//
// # Mutation Counting
//
// CountMutations reports how many native mutations a function caused,
// which is how tests pin down that an unchanged refresh touches nothing:
//
//	if n := h.CountMutations(func() { h.Refresh(t) }); n != 0 {
//	    t.Errorf("expected no mutations, got %d", n)
//	}
//
// # Events
//
// Click and Dispatch deliver events to elements the way a browser would,
// bubbling through ancestors. Listeners may refresh their root.
package enginetest
