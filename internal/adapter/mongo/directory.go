package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

const (
	userCollection = "users"
	postCollection = "posts"
)

// Directory is the read-only lookup side backing event enrichment. It only
// projects the summary fields that travel on the wire; full documents stay
// with the REST layer.
type Directory struct {
	db *mongo.Database
}

func NewDirectory(db *mongo.Database) *Directory {
	return &Directory{db: db}
}

func (d *Directory) GetUser(ctx context.Context, id string) (model.UserRef, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.UserRef{}, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	var doc struct {
		ID        primitive.ObjectID `bson:"_id"`
		Username  string             `bson:"username"`
		AvatarURL string             `bson:"avatarUrl"`
	}
	err = d.db.Collection(userCollection).
		FindOne(ctx, bson.M{"_id": oid}, options.FindOne().
			SetProjection(bson.M{"username": 1, "avatarUrl": 1})).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.UserRef{}, fmt.Errorf("user %s not found", id)
		}
		return model.UserRef{}, fmt.Errorf("find user: %w", err)
	}

	return model.UserRef{
		ID:        doc.ID.Hex(),
		Username:  doc.Username,
		AvatarURL: doc.AvatarURL,
	}, nil
}

func (d *Directory) GetPost(ctx context.Context, id string) (*model.PostRef, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post id %q: %w", id, err)
	}

	var doc struct {
		ID      primitive.ObjectID `bson:"_id"`
		Content string             `bson:"content"`
	}
	err = d.db.Collection(postCollection).
		FindOne(ctx, bson.M{"_id": oid}, options.FindOne().
			SetProjection(bson.M{"content": 1})).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// A deleted post is not an error; the notification simply
			// travels without a summary.
			return nil, nil
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	return &model.PostRef{ID: doc.ID.Hex(), Content: doc.Content}, nil
}
