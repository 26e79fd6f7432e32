package preview

// MessageType identifies a preview message.
type MessageType string

const (
	MessageEvent MessageType = "event"
	MessageHTML  MessageType = "html"
	MessageError MessageType = "error"
)

// Message is exchanged with browsers over the WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	NID   int         `json:"nid,omitempty"`
	Event string      `json:"event,omitempty"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}
