package event

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

var (
	_ Eventer    = (*UserStatusEvent)(nil)
	_ Exportable = (*UserStatusEvent)(nil)
)

// UserStatusEvent records a user going online or offline. It is exported to
// the bus so the REST side can maintain last-seen timestamps.
type UserStatusEvent struct {
	id      string
	payload *model.UserStatusPayload
	cached  atomic.Value
}

func NewUserStatusEvent(userID string, online bool) *UserStatusEvent {
	return &UserStatusEvent{
		id: uuid.NewString(),
		payload: &model.UserStatusPayload{
			UserID:    userID,
			Online:    online,
			ChangedAt: time.Now().UnixMilli(),
		},
	}
}

func (e *UserStatusEvent) GetID() string              { return e.id }
func (e *UserStatusEvent) GetKind() EventKind         { return PresenceChanged }
func (e *UserStatusEvent) GetUserID() string          { return e.payload.UserID }
func (e *UserStatusEvent) GetPriority() EventPriority { return PriorityLow }
func (e *UserStatusEvent) GetOccurredAt() int64       { return e.payload.ChangedAt }
func (e *UserStatusEvent) GetPayload() any            { return e.payload }
func (e *UserStatusEvent) GetCached() any             { return e.cached.Load() }
func (e *UserStatusEvent) SetCached(v any)            { e.cached.Store(v) }

// GetRoutingKey follows the pattern im_presence.v1.{user_id}.user.status.
func (e *UserStatusEvent) GetRoutingKey() string {
	return fmt.Sprintf("im_presence.v1.%s.user.status", e.payload.UserID)
}
