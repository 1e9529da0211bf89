package event

type EventKind int16

const (
	Connected       EventKind = iota + 1 // system
	Disconnected                         // system
	PresenceChanged                      // system
	MessageCreated                       // business
	NotificationCreated                  // business
)

func (k EventKind) String() string {
	switch k {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	case PresenceChanged:
		return "presence_changed"
	case MessageCreated:
		return "message_created"
	case NotificationCreated:
		return "notification_created"
	default:
		return "unknown"
	}
}

type EventPriority int32

const (
	PriorityLow    EventPriority = 10
	PriorityNormal EventPriority = 20
	PriorityHigh   EventPriority = 30
)

// Eventer defines the contract for all data packets flowing through the Hub.
type Eventer interface {
	GetID() string
	GetKind() EventKind
	GetUserID() string
	GetPriority() EventPriority
	GetOccurredAt() int64
	GetPayload() any
	GetCached() any
	SetCached(any)
}

// Exportable marks an event that must also be re-published to the message
// bus. An empty routing key tells the dispatcher to skip publishing.
type Exportable interface {
	GetRoutingKey() string
}
