package model

// NotificationType enumerates the domain actions that produce a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// Notification is the persisted record of a like/comment/follow action.
// The real-time layer never mutates it after creation; Read is flipped in
// bulk by the REST mark-read operation outside this service.
type Notification struct {
	ID          string           `json:"_id"`
	RecipientID string           `json:"-"`
	SenderID    string           `json:"-"`
	Type        NotificationType `json:"type"`
	Read        bool             `json:"read"`
	CreatedAt   int64            `json:"createdAt"`
	Sender      UserRef          `json:"sender"`
	Post        *PostRef         `json:"post,omitempty"`
}
