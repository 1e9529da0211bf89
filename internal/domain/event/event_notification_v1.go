package event

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

var _ Eventer = (*NotificationCreatedEvent)(nil)

// NotificationCreatedEvent wraps a persisted notification targeted at its
// recipient. Only ever pushed to a single connection; offline recipients
// simply miss the push and read the stored record later.
type NotificationCreatedEvent struct {
	id           string
	notification *model.Notification
	cached       atomic.Value
}

func NewNotificationCreatedEvent(n *model.Notification, sender model.UserRef, post *model.PostRef) *NotificationCreatedEvent {
	n.Sender = sender
	n.Post = post

	return &NotificationCreatedEvent{
		id:           uuid.NewString(),
		notification: n,
	}
}

func (e *NotificationCreatedEvent) GetID() string              { return e.id }
func (e *NotificationCreatedEvent) GetPayload() any            { return e.notification }
func (e *NotificationCreatedEvent) GetUserID() string          { return e.notification.RecipientID }
func (e *NotificationCreatedEvent) GetOccurredAt() int64       { return e.notification.CreatedAt }
func (e *NotificationCreatedEvent) GetKind() EventKind         { return NotificationCreated }
func (e *NotificationCreatedEvent) GetPriority() EventPriority { return PriorityNormal }
func (e *NotificationCreatedEvent) GetCached() any             { return e.cached.Load() }
func (e *NotificationCreatedEvent) SetCached(v any)            { e.cached.Store(v) }
