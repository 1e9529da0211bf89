package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Notifier fans a domain action (like, comment, follow) out to its single
// recipient.
type Notifier interface {
	Notify(ctx context.Context, recipientID, senderID string, typ model.NotificationType, postID string) error
}

type NotifyService struct {
	store    NotificationStore
	enricher Enricher
	hub      registry.Hubber
	logger   *slog.Logger
}

func NewNotifyService(store NotificationStore, enricher Enricher, hub registry.Hubber, logger *slog.Logger) *NotifyService {
	return &NotifyService{
		store:    store,
		enricher: enricher,
		hub:      hub,
		logger:   logger,
	}
}

// Notify persists the notification record first and pushes it live only if
// the recipient is online at push time. Offline recipients read the stored
// record through the REST listing; no retry happens here.
func (s *NotifyService) Notify(ctx context.Context, recipientID, senderID string, typ model.NotificationType, postID string) error {
	// A user is never notified of their own action.
	if recipientID == "" || recipientID == senderID {
		return nil
	}

	ctx, span := tracer.Start(ctx, "delivery.notify")
	defer span.End()
	span.SetAttributes(
		attribute.String("recipient_id", recipientID),
		attribute.String("type", string(typ)),
	)

	// Suspension point: persist before any push.
	n, err := s.store.CreateNotification(ctx, recipientID, senderID, typ, postID)
	if err != nil {
		span.SetStatus(codes.Error, "persistence failed")
		return fmt.Errorf("persist notification: %w", err)
	}

	sender, err := s.enricher.ResolveUser(ctx, senderID)
	if err != nil {
		s.logger.Debug("notification annotation degraded", "err", err)
	}
	post, err := s.enricher.ResolvePost(ctx, postID)
	if err != nil {
		s.logger.Debug("post annotation degraded", "post_id", postID, "err", err)
		post = nil
	}

	// Presence is re-resolved at push time inside the hub; a recipient that
	// went offline after persistence simply keeps the stored record.
	if !s.hub.Broadcast(event.NewNotificationCreatedEvent(n, sender, post)) {
		s.logger.Debug("recipient offline, notification stored only",
			"recipient_id", recipientID,
			"notification_id", n.ID,
		)
	}

	return nil
}
