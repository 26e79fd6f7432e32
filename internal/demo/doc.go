// Package demo holds the compiled templates the CLI and preview server can
// mount.
//
// Each Demo pairs a template with a constructor for its root context and a
// Step function that advances the state the way a scripted interaction
// would, so `incr render --refresh N` can show the tree after N updates.
package demo
