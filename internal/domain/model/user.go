package model

// UserRef is the public summary of a user attached to outgoing events.
// Mirrors the fields the REST layer exposes for message and notification
// participants (id, username, avatarUrl).
type UserRef struct {
	ID        string `json:"_id" bson:"_id"`
	Username  string `json:"username" bson:"username"`
	AvatarURL string `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
}

// BareUserRef builds a reference carrying only the identity. Used as a
// fallback when the user directory cannot be reached; delivery must keep
// moving even without display fields.
func BareUserRef(id string) UserRef {
	return UserRef{ID: id}
}

// PostRef is the shortened post summary embedded into notifications.
type PostRef struct {
	ID      string `json:"_id" bson:"_id"`
	Content string `json:"content,omitempty" bson:"content,omitempty"`
}
