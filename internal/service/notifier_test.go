package service

import (
	"context"
	"testing"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
)

func newNotifierFixture() (*NotifyService, *DeliveryService, *memNotificationStore) {
	hub := registry.NewHub()
	store := &memNotificationStore{}
	deliverer := NewDeliveryService(hub, &memExporter{}, discardLogger())
	svc := NewNotifyService(store, newEnricher(), hub, discardLogger())
	return svc, deliverer, store
}

func TestNotify_SelfNotificationSuppressed(t *testing.T) {
	svc, deliverer, store := newNotifierFixture()
	_, conn := connectUser(t, deliverer, "u1")
	drainAll(conn)

	if err := svc.Notify(context.Background(), "u1", "u1", model.NotificationLike, "p1"); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}

	// Nothing persisted, nothing pushed.
	if len(store.notifications) != 0 {
		t.Errorf("self-notification persisted %d records, want 0", len(store.notifications))
	}
	expectNoEvent(t, conn)
}

func TestNotify_OfflineRecipientPersistsOnly(t *testing.T) {
	svc, _, store := newNotifierFixture()

	if err := svc.Notify(context.Background(), "u2", "u1", model.NotificationComment, "p1"); err != nil {
		t.Fatalf("Notify() with offline recipient returned error: %v", err)
	}

	stored, err := store.ListByRecipient(context.Background(), "u2", 10)
	if err != nil {
		t.Fatalf("ListByRecipient() failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(stored))
	}
	if stored[0].Type != model.NotificationComment || stored[0].Read {
		t.Errorf("stored notification = {type:%s read:%v}, want {comment false}", stored[0].Type, stored[0].Read)
	}
}

func TestNotify_OnlineRecipientGetsPush(t *testing.T) {
	svc, deliverer, _ := newNotifierFixture()
	_, conn := connectUser(t, deliverer, "u2")

	if err := svc.Notify(context.Background(), "u2", "u1", model.NotificationFollow, ""); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}

	got := drainKind(t, conn, event.NotificationCreated)
	n, ok := got.GetPayload().(*model.Notification)
	if !ok {
		t.Fatalf("payload type = %T, want *model.Notification", got.GetPayload())
	}
	if n.Type != model.NotificationFollow {
		t.Errorf("pushed type = %s, want follow", n.Type)
	}
	if n.Sender.ID != "u1" {
		t.Errorf("pushed sender = %s, want u1", n.Sender.ID)
	}
	if n.Read {
		t.Error("pushed notification already marked read")
	}
	if n.Post != nil {
		t.Errorf("follow notification carries post %v, want none", n.Post)
	}
}

func TestNotify_PersistenceFailureSuppressesPush(t *testing.T) {
	svc, deliverer, store := newNotifierFixture()
	store.fail = true

	_, conn := connectUser(t, deliverer, "u2")
	drainAll(conn)

	if err := svc.Notify(context.Background(), "u2", "u1", model.NotificationLike, "p1"); err == nil {
		t.Fatal("Notify() with failing store returned nil error")
	}
	expectNoEvent(t, conn)
}

func TestNotify_LikeCarriesPostSummary(t *testing.T) {
	hub := registry.NewHub()
	store := &memNotificationStore{}
	deliverer := NewDeliveryService(hub, &memExporter{}, discardLogger())
	enricher := NewUserEnricherService(&memUserDirectory{}, &memPostDirectory{
		posts: map[string]*model.PostRef{"p7": {ID: "p7", Content: "great shot"}},
	})
	svc := NewNotifyService(store, enricher, hub, discardLogger())

	_, conn := connectUser(t, deliverer, "u2")

	if err := svc.Notify(context.Background(), "u2", "u1", model.NotificationLike, "p7"); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}

	got := drainKind(t, conn, event.NotificationCreated)
	n := got.GetPayload().(*model.Notification)
	if n.Post == nil || n.Post.Content != "great shot" {
		t.Errorf("notification post = %v, want content \"great shot\"", n.Post)
	}
}
