package wsmarshaller

import (
	"encoding/json"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

// WSEvent is the envelope every frame shares on the socket.
type WSEvent struct {
	Event   string `json:"event"`
	ID      string `json:"id"`
	SentAt  int64  `json:"sent_at"`
	Payload any    `json:"payload"`
}

// MarshallDeliveryEvent serializes a domain event for socket transmission.
// The encoded frame is cached on the event, so a presence snapshot fanned
// out to every connection is marshalled once.
func MarshallDeliveryEvent(ev event.Eventer) ([]byte, error) {
	if cached := ev.GetCached(); cached != nil {
		if data, ok := cached.([]byte); ok {
			return data, nil
		}
	}

	res := &WSEvent{
		ID:     ev.GetID(),
		SentAt: ev.GetOccurredAt(),
	}

	// Event names follow the client protocol contract.
	switch p := ev.GetPayload().(type) {
	case *model.ChatMessage:
		res.Event = "receive_message"
		res.Payload = p
	case *model.Notification:
		res.Event = "new_notification"
		res.Payload = p
	case *model.OnlineUsersPayload:
		res.Event = "getOnlineUsers"
		res.Payload = p.UserIDs
	case *model.ConnectedPayload:
		res.Event = "connected"
		res.Payload = p
	case *model.DisconnectedPayload:
		res.Event = "disconnected"
		res.Payload = p
	default:
		res.Event = ev.GetKind().String()
		res.Payload = p
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	ev.SetCached(data)
	return data, nil
}
