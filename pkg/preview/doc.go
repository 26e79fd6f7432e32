// Package preview serves a live render root over HTTP.
//
// The server holds one engine root rendered into an in-memory document.
// Browsers load the serialized document, then stay connected over a
// WebSocket: element events travel to the server as
//
//	{"type":"event","nid":4,"event":"click"}
//
// are dispatched on the document, and every connected client receives the
// re-serialized content as {"type":"html","html":"..."}.
//
// Routes:
//
//	GET /            HTML shell with the current content and client script
//	GET /_incr/html  current content
//	GET /_incr/ws    WebSocket endpoint
//	GET /metrics     Prometheus metrics, when a gatherer is configured
package preview
