package model

// ChatMessage is the core direct-message entity. Immutable once persisted;
// the delivery layer only annotates it with sender/receiver summaries
// before pushing it to live connections.
type ChatMessage struct {
	ID         string  `json:"_id"`
	SenderID   string  `json:"-"`
	ReceiverID string  `json:"-"`
	Content    string  `json:"content"`
	CreatedAt  int64   `json:"createdAt"`
	Sender     UserRef `json:"sender"`
	Receiver   UserRef `json:"receiver"`
}
