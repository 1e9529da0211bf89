package wsmarshaller

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

func decodeFrame(t *testing.T, data []byte) (string, json.RawMessage) {
	t.Helper()
	var frame struct {
		Event   string          `json:"event"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	return frame.Event, frame.Payload
}

func TestMarshall_MessageFrame(t *testing.T) {
	msg := &model.ChatMessage{ID: "m1", Content: "hello", CreatedAt: 1700000000000}
	ev := event.NewMessageCreatedEvent(msg, "r1",
		model.UserRef{ID: "s1", Username: "alice"},
		model.UserRef{ID: "r1", Username: "bob"},
	)

	data, err := MarshallDeliveryEvent(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	name, payload := decodeFrame(t, data)
	if name != "receive_message" {
		t.Errorf("event = %q, want receive_message", name)
	}

	var body struct {
		Content string        `json:"content"`
		Sender  model.UserRef `json:"sender"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		t.Fatalf("payload decode: %v", err)
	}
	if body.Content != "hello" || body.Sender.Username != "alice" {
		t.Errorf("payload = %+v, want content and enriched sender", body)
	}
}

func TestMarshall_NotificationFrame(t *testing.T) {
	n := &model.Notification{ID: "n1", Type: model.NotificationLike, RecipientID: "r1"}
	ev := event.NewNotificationCreatedEvent(n,
		model.UserRef{ID: "s1", Username: "alice"},
		&model.PostRef{ID: "p1", Content: "my post"},
	)

	data, err := MarshallDeliveryEvent(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	name, payload := decodeFrame(t, data)
	if name != "new_notification" {
		t.Errorf("event = %q, want new_notification", name)
	}

	var body struct {
		Type string         `json:"type"`
		Read bool           `json:"read"`
		Post *model.PostRef `json:"post"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		t.Fatalf("payload decode: %v", err)
	}
	if body.Type != "like" || body.Read || body.Post == nil || body.Post.Content != "my post" {
		t.Errorf("payload = %+v, want unread like with post summary", body)
	}
}

func TestMarshall_PresenceFrameIsBareIDList(t *testing.T) {
	ev := event.NewSystemEvent("", event.PresenceChanged, event.PriorityNormal,
		&model.OnlineUsersPayload{UserIDs: []string{"u1", "u2"}})

	data, err := MarshallDeliveryEvent(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	name, payload := decodeFrame(t, data)
	if name != "getOnlineUsers" {
		t.Errorf("event = %q, want getOnlineUsers", name)
	}

	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		t.Fatalf("payload must be a plain id array: %v", err)
	}
	if len(ids) != 2 || ids[0] != "u1" {
		t.Errorf("ids = %v, want [u1 u2]", ids)
	}
}

func TestMarshall_CachesEncodedFrame(t *testing.T) {
	ev := event.NewSystemEvent("u1", event.Connected, event.PriorityHigh,
		&model.ConnectedPayload{Ok: true, ConnectionID: "c1", ServerVersion: model.ServerVersion})

	first, err := MarshallDeliveryEvent(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if ev.GetCached() == nil {
		t.Fatal("encoded frame was not cached on the event")
	}

	second, err := MarshallDeliveryEvent(ev)
	if err != nil {
		t.Fatalf("second marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("cached frame differs from first encoding")
	}
}

func TestMarshall_SharedEventConcurrentFanOut(t *testing.T) {
	ev := event.NewSystemEvent("", event.PresenceChanged, event.PriorityNormal,
		&model.OnlineUsersPayload{UserIDs: []string{"u1", "u2", "u3"}})

	want, err := MarshallDeliveryEvent(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	frames := make([][]byte, 16)
	var wg sync.WaitGroup
	for i := range frames {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := MarshallDeliveryEvent(ev)
			if err != nil {
				t.Errorf("concurrent marshal failed: %v", err)
				return
			}
			frames[i] = data
		}(i)
	}
	wg.Wait()

	for i, data := range frames {
		if !bytes.Equal(data, want) {
			t.Fatalf("frame %d differs from the first encoding", i)
		}
	}
}
