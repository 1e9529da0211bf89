package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

const messageCollection = "messages"

// messageDoc is the persisted shape of a direct message. Field names match
// the collection the REST message history endpoint reads from.
type messageDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	SenderID   primitive.ObjectID `bson:"sender"`
	ReceiverID primitive.ObjectID `bson:"receiver"`
	Content    string             `bson:"content"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// MessageStore writes direct messages into the shared messages collection.
type MessageStore struct {
	db *mongo.Database
}

func NewMessageStore(db *mongo.Database) *MessageStore {
	return &MessageStore{db: db}
}

// CreateMessage inserts a new message and returns the domain entity carrying
// the generated id. The write must succeed before any push is attempted.
func (s *MessageStore) CreateMessage(ctx context.Context, senderID, receiverID, content string) (*model.ChatMessage, error) {
	sender, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, fmt.Errorf("invalid sender id %q: %w", senderID, err)
	}
	receiver, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, fmt.Errorf("invalid receiver id %q: %w", receiverID, err)
	}

	doc := messageDoc{
		ID:         primitive.NewObjectID(),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.db.Collection(messageCollection).InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	return &model.ChatMessage{
		ID:         doc.ID.Hex(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  doc.CreatedAt.UnixMilli(),
	}, nil
}
