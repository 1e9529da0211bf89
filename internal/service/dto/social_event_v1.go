// internal/service/dto/social_event_v1.go
package dto

// SocialActionV1 is the wire shape of the domain events the REST backend
// publishes when a post is liked or commented on, or a user is followed.
// Identifiers are Mongo ObjectID hex strings.
type SocialActionV1 struct {
	RecipientID string `json:"recipient_id"`
	SenderID    string `json:"sender_id"`
	PostID      string `json:"post_id,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
