package ws

import "encoding/json"

// InboundEvent is the envelope clients send over the socket.
type InboundEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Client protocol event names.
const (
	EventAddUser     = "addUser"
	EventSendMessage = "send_message"
)

// SendMessagePayload carries a direct message from the sender's socket.
type SendMessagePayload struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}
