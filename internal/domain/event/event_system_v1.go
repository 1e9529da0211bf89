package event

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var _ Eventer = (*SystemEvent)(nil)

// SystemEvent is a generic envelope for connection-level signals
// (connected, disconnected, presence changes).
type SystemEvent struct {
	id         string
	userID     string
	kind       EventKind
	priority   EventPriority
	occurredAt int64
	payload    any
	cached     atomic.Value
}

func (e *SystemEvent) GetID() string              { return e.id }
func (e *SystemEvent) GetKind() EventKind         { return e.kind }
func (e *SystemEvent) GetUserID() string          { return e.userID }
func (e *SystemEvent) GetPriority() EventPriority { return e.priority }
func (e *SystemEvent) GetOccurredAt() int64       { return e.occurredAt }
func (e *SystemEvent) GetPayload() any            { return e.payload }
func (e *SystemEvent) GetCached() any             { return e.cached.Load() }
func (e *SystemEvent) SetCached(v any)            { e.cached.Store(v) }

// NewSystemEvent is a universal factory for connection-level signals.
func NewSystemEvent(userID string, kind EventKind, priority EventPriority, payload any) *SystemEvent {
	return &SystemEvent{
		id:         uuid.NewString(),
		userID:     userID,
		kind:       kind,
		priority:   priority,
		occurredAt: time.Now().UnixMilli(),
		payload:    payload,
	}
}
