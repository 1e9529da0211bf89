package service

import (
	"context"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

// External persistence collaborators. Calls into these are the suspension
// points of every delivery operation: a push may only happen after the
// corresponding Create returned without error.

// MessageStore persists direct messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, senderID, receiverID, content string) (*model.ChatMessage, error)
}

// NotificationStore persists notification records. Offline recipients rely
// on ListByRecipient to read what they missed; the real-time layer itself
// never re-attempts delivery.
type NotificationStore interface {
	CreateNotification(ctx context.Context, recipientID, senderID string, typ model.NotificationType, postID string) (*model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit int64) ([]*model.Notification, error)
}

// UserDirectory resolves user summaries for event annotation.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (model.UserRef, error)
}

// PostDirectory resolves the post summary embedded into like/comment
// notifications.
type PostDirectory interface {
	GetPost(ctx context.Context, id string) (*model.PostRef, error)
}
