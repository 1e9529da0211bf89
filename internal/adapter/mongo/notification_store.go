package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

const notificationCollection = "notifications"

type notificationDoc struct {
	ID          primitive.ObjectID  `bson:"_id"`
	RecipientID primitive.ObjectID  `bson:"recipient"`
	SenderID    primitive.ObjectID  `bson:"sender"`
	Type        string              `bson:"type"`
	PostID      *primitive.ObjectID `bson:"post,omitempty"`
	Read        bool                `bson:"read"`
	CreatedAt   time.Time           `bson:"createdAt"`
}

// NotificationStore writes notification records into the shared collection.
// Offline recipients read them back through the REST layer; this service
// only appends.
type NotificationStore struct {
	db *mongo.Database
}

func NewNotificationStore(db *mongo.Database) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) CreateNotification(ctx context.Context, recipientID, senderID string, typ model.NotificationType, postID string) (*model.Notification, error) {
	recipient, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient id %q: %w", recipientID, err)
	}
	sender, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, fmt.Errorf("invalid sender id %q: %w", senderID, err)
	}

	doc := notificationDoc{
		ID:          primitive.NewObjectID(),
		RecipientID: recipient,
		SenderID:    sender,
		Type:        string(typ),
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}
	if postID != "" {
		post, err := primitive.ObjectIDFromHex(postID)
		if err != nil {
			return nil, fmt.Errorf("invalid post id %q: %w", postID, err)
		}
		doc.PostID = &post
	}

	if _, err := s.db.Collection(notificationCollection).InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	return notificationFromDoc(&doc), nil
}

// ListByRecipient returns the newest notifications for a user, most recent
// first. Serves the catch-up read a reconnecting client performs.
func (s *NotificationStore) ListByRecipient(ctx context.Context, recipientID string, limit int64) ([]*model.Notification, error) {
	recipient, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient id %q: %w", recipientID, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.db.Collection(notificationCollection).
		Find(ctx, bson.M{"recipient": recipient}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []notificationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}

	out := make([]*model.Notification, 0, len(docs))
	for i := range docs {
		out = append(out, notificationFromDoc(&docs[i]))
	}
	return out, nil
}

func notificationFromDoc(doc *notificationDoc) *model.Notification {
	n := &model.Notification{
		ID:          doc.ID.Hex(),
		RecipientID: doc.RecipientID.Hex(),
		SenderID:    doc.SenderID.Hex(),
		Type:        model.NotificationType(doc.Type),
		Read:        doc.Read,
		CreatedAt:   doc.CreatedAt.UnixMilli(),
	}
	if doc.PostID != nil {
		n.Post = &model.PostRef{ID: doc.PostID.Hex()}
	}
	return n
}
