// Package errors provides structured, actionable error values for incr.
//
// Every failure the engine reports carries a stable code (e.g. "E001") that
// maps to a registered template:
//   - A short message describing the error
//   - A detailed explanation
//   - A category used for grouping
//
// # Error Categories
//
//   - runtime: instruction-sequence faults inside a render or refresh pass
//   - projection: slot/slotable consistency violations
//   - config: invalid configuration files or flags
//   - storage: snapshot publishing failures
//   - preview: malformed preview client messages
//
// # Usage
//
//	err := errors.New("E001").
//	    WithLocation(viewID, index).
//	    WithSuggestion("Create and update passes must use the same node indices")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Node index not found
//	//
//	//   view 3, node 7
//	//
//	//   No node was registered at this index in the current view.
//	//
//	//   Hint: Create and update passes must use the same node indices
package errors
