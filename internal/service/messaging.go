package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer = otel.Tracer("github.com/opengram/realtime-delivery-service/internal/service")

// Messenger is the direct-message delivery channel.
type Messenger interface {
	SendMessage(ctx context.Context, sess *model.Session, receiverID, content string) error
}

type MessageService struct {
	store    MessageStore
	enricher Enricher
	hub      registry.Hubber
	logger   *slog.Logger
}

func NewMessageService(store MessageStore, enricher Enricher, hub registry.Hubber, logger *slog.Logger) *MessageService {
	return &MessageService{
		store:    store,
		enricher: enricher,
		hub:      hub,
		logger:   logger,
	}
}

// SendMessage persists the message, then pushes it to the receiver (when
// online) and always echoes it back to the sender. Persistence failure
// aborts delivery entirely: no push may expose a write that never happened.
func (s *MessageService) SendMessage(ctx context.Context, sess *model.Session, receiverID, content string) error {
	// Only an active session with a known identity may originate messages.
	// Anything else is dropped silently; the connection stays open.
	if !sess.IsActive() {
		s.logger.Warn("message from non-active session dropped",
			"session_state", sess.State().String(),
		)
		return nil
	}

	ctx, span := tracer.Start(ctx, "delivery.send_message")
	defer span.End()

	senderID := sess.UserID()
	span.SetAttributes(
		attribute.String("sender_id", senderID),
		attribute.String("receiver_id", receiverID),
	)

	// Suspension point: the external store. Between here and the pushes
	// below, presence may change; the hub re-resolves at push time.
	msg, err := s.store.CreateMessage(ctx, senderID, receiverID, content)
	if err != nil {
		span.SetStatus(codes.Error, "persistence failed")
		return fmt.Errorf("persist message: %w", err)
	}

	sender, receiver, err := s.enricher.ResolvePair(ctx, senderID, receiverID)
	if err != nil {
		// Bare references still identify the participants; delivery
		// proceeds without display fields.
		s.logger.Debug("message annotation degraded", "err", err)
	}

	// Receiver push: offline or stale is a normal terminal state, not an
	// error surfaced to the sender.
	if !s.hub.Broadcast(event.NewMessageCreatedEvent(msg, receiverID, sender, receiver)) {
		s.logger.Debug("receiver offline, message stored only",
			"receiver_id", receiverID,
			"message_id", msg.ID,
		)
	}

	// Sender echo: the read-your-own-write confirmation, pushed regardless
	// of the receiver's presence.
	s.hub.Broadcast(event.NewMessageCreatedEvent(msg, senderID, sender, receiver))

	return nil
}
