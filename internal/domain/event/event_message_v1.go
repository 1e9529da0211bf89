package event

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

var _ Eventer = (*MessageCreatedEvent)(nil)

// MessageCreatedEvent wraps a persisted chat message for fan-out.
//
// It distinguishes the business peers (message.Sender/Receiver, the "who")
// from the routing target (userID, the "where"): the same persisted message
// is wrapped twice, once targeted at the receiver and once echoed back to
// the sender.
type MessageCreatedEvent struct {
	id      string
	message *model.ChatMessage
	userID  string // physical recipient of this event instance
	cached  atomic.Value
}

// NewMessageCreatedEvent binds the enriched participants and targets the
// event at a single online user.
func NewMessageCreatedEvent(msg *model.ChatMessage, userID string, sender, receiver model.UserRef) *MessageCreatedEvent {
	msg.Sender = sender
	msg.Receiver = receiver

	return &MessageCreatedEvent{
		id:      uuid.NewString(),
		message: msg,
		userID:  userID,
	}
}

func (e *MessageCreatedEvent) GetID() string              { return e.id }
func (e *MessageCreatedEvent) GetPayload() any            { return e.message }
func (e *MessageCreatedEvent) GetUserID() string          { return e.userID }
func (e *MessageCreatedEvent) GetOccurredAt() int64       { return e.message.CreatedAt }
func (e *MessageCreatedEvent) GetKind() EventKind         { return MessageCreated }
func (e *MessageCreatedEvent) GetPriority() EventPriority { return PriorityHigh }
func (e *MessageCreatedEvent) GetCached() any             { return e.cached.Load() }
func (e *MessageCreatedEvent) SetCached(v any)            { e.cached.Store(v) }
