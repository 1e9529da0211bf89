package lpmarshaller

import (
	"encoding/json"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

// LPEvent represents a single event structured for long-polling consumers.
type LPEvent struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Payload any    `json:"payload"`
}

// Response defines the top-level JSON object to support event batching.
type Response struct {
	Events []LPEvent `json:"events"`
}

// MarshallEvents converts a slice of domain events into a single JSON batch.
func MarshallEvents(events []event.Eventer) ([]byte, error) {
	res := Response{
		Events: make([]LPEvent, 0, len(events)),
	}

	for _, ev := range events {
		lpEv := LPEvent{
			ID:      ev.GetID(),
			Payload: ev.GetPayload(),
		}

		switch p := ev.GetPayload().(type) {
		case *model.ChatMessage:
			lpEv.Type = "receive_message"
		case *model.Notification:
			lpEv.Type = "new_notification"
		case *model.OnlineUsersPayload:
			lpEv.Type = "getOnlineUsers"
			lpEv.Payload = p.UserIDs
		case *model.ConnectedPayload:
			lpEv.Type = "connected"
		case *model.DisconnectedPayload:
			lpEv.Type = "disconnected"
		default:
			lpEv.Type = ev.GetKind().String()
		}
		res.Events = append(res.Events, lpEv)
	}

	return json.Marshal(res)
}
