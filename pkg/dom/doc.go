// Package dom provides an in-memory document that implements the
// native.Document adapter.
//
// The document is headless: nodes live only in memory, serialize to HTML on
// demand and fire listeners when an event is dispatched to them. It backs
// the CLI, the preview server and every engine test.
//
// # Serialization
//
//	doc := dom.NewDocument()
//	root := doc.CreateElement("body").(*dom.Node)
//	...
//	fmt.Println(root.InnerHTML())
//
// Text is escaped, comments render as <!--text--> and void elements
// (input, br, img, ...) have no closing tag. Attributes keep insertion order.
//
// # Mutation accounting
//
// Every adapter call that changes the tree, an attribute, a class, a
// property or a text value is counted in Stats and reported to an optional
// observer, so callers can assert exactly how many native mutations a pass
// performed.
package dom
