package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
)

// Shared in-memory collaborators for the service tests.

var errStoreDown = errors.New("store unavailable")

type memMessageStore struct {
	mu       sync.Mutex
	messages []*model.ChatMessage
	fail     bool
}

func (s *memMessageStore) CreateMessage(ctx context.Context, senderID, receiverID, content string) (*model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStoreDown
	}
	msg := &model.ChatMessage{
		ID:         fmt.Sprintf("m%d", len(s.messages)+1),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UnixMilli(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *memMessageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type memNotificationStore struct {
	mu            sync.Mutex
	notifications []*model.Notification
	fail          bool
}

func (s *memNotificationStore) CreateNotification(ctx context.Context, recipientID, senderID string, typ model.NotificationType, postID string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStoreDown
	}
	n := &model.Notification{
		ID:          fmt.Sprintf("n%d", len(s.notifications)+1),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        typ,
		Read:        false,
		CreatedAt:   time.Now().UnixMilli(),
	}
	s.notifications = append(s.notifications, n)
	return n, nil
}

func (s *memNotificationStore) ListByRecipient(ctx context.Context, recipientID string, limit int64) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []*model.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			res = append(res, n)
		}
	}
	return res, nil
}

type memUserDirectory struct {
	mu    sync.Mutex
	users map[string]model.UserRef
	fail  bool
	calls int
}

func (d *memUserDirectory) GetUser(ctx context.Context, id string) (model.UserRef, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.fail {
		return model.UserRef{}, errStoreDown
	}
	if u, ok := d.users[id]; ok {
		return u, nil
	}
	return model.UserRef{ID: id, Username: "user-" + id}, nil
}

type memPostDirectory struct {
	posts map[string]*model.PostRef
}

func (d *memPostDirectory) GetPost(ctx context.Context, id string) (*model.PostRef, error) {
	if p, ok := d.posts[id]; ok {
		return p, nil
	}
	return &model.PostRef{ID: id}, nil
}

type memExporter struct {
	mu     sync.Mutex
	events []event.Eventer
}

func (e *memExporter) Publish(ctx context.Context, ev event.Eventer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEnricher() *UserEnricher {
	return NewUserEnricherService(&memUserDirectory{}, &memPostDirectory{})
}

// connectUser registers a live connection for userID and returns its
// session and connector.
func connectUser(t *testing.T, d Deliverer, userID string) (*model.Session, registry.Connector) {
	t.Helper()

	sess := model.NewSession()
	sess.BeginAuth()
	if !sess.Authenticate(userID) {
		t.Fatalf("Authenticate(%q) failed", userID)
	}

	conn, err := d.Subscribe(context.Background(), sess)
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}
	if !d.Announce(context.Background(), sess, conn, userID) {
		t.Fatalf("Announce(%q) failed", userID)
	}
	return sess, conn
}

// recvEvent pulls the next event from a connector with a timeout.
func recvEvent(t *testing.T, conn registry.Connector) event.Eventer {
	t.Helper()
	select {
	case ev, ok := <-conn.Recv():
		if !ok {
			t.Fatal("connector mailbox closed while waiting for an event")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an event")
		return nil
	}
}

// drainKind pulls events until one of the wanted kind arrives, skipping
// presence broadcasts that interleave with targeted deliveries.
func drainKind(t *testing.T, conn registry.Connector, kind event.EventKind) event.Eventer {
	t.Helper()
	for range 16 {
		ev := recvEvent(t, conn)
		if ev.GetKind() == kind {
			return ev
		}
	}
	t.Fatalf("no %v event within 16 received events", kind)
	return nil
}

// drainAll empties a connector mailbox of anything already queued.
func drainAll(conn registry.Connector) {
	for {
		select {
		case <-conn.Recv():
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

// expectNoEvent asserts the mailbox stays silent.
func expectNoEvent(t *testing.T, conn registry.Connector) {
	t.Helper()
	select {
	case ev := <-conn.Recv():
		t.Fatalf("unexpected event %v (%s)", ev.GetKind(), ev.GetID())
	case <-time.After(50 * time.Millisecond):
	}
}
