package service

import (
	"context"
	"log/slog"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
)

// Exporter publishes selected events back to the message bus.
type Exporter interface {
	Publish(ctx context.Context, ev event.Eventer) error
}

// Deliverer orchestrates the connection lifecycle: subscribe after
// authentication, announce to enter the presence registry, disconnect to
// leave it. It is the only component that mutates presence.
type Deliverer interface {
	Subscribe(ctx context.Context, sess *model.Session) (registry.Connector, error)
	Announce(ctx context.Context, sess *model.Session, conn registry.Connector, announcedID string) bool
	Disconnect(ctx context.Context, sess *model.Session, conn registry.Connector)
}

type DeliveryService struct {
	hub      registry.Hubber
	exporter Exporter
	logger   *slog.Logger
}

func NewDeliveryService(hub registry.Hubber, exporter Exporter, logger *slog.Logger) *DeliveryService {
	return &DeliveryService{
		hub:      hub,
		exporter: exporter,
		logger:   logger,
	}
}

// Subscribe creates the connection handle for an authenticated session. The
// session stays idle: no presence entry exists until the client announces
// its own identity.
func (s *DeliveryService) Subscribe(ctx context.Context, sess *model.Session) (registry.Connector, error) {
	const defaultBufferSize = 1024

	conn := registry.NewConnector(ctx, sess.UserID(), defaultBufferSize)
	return conn, nil
}

// Announce handles the client's addUser event. The claimed identity must
// match the authenticated one; a mismatch is silently ignored and the
// session stays idle (permissive source behavior, kept on purpose).
func (s *DeliveryService) Announce(ctx context.Context, sess *model.Session, conn registry.Connector, announcedID string) bool {
	if !sess.Activate(announcedID) {
		s.logger.Debug("presence announce ignored",
			"session_state", sess.State().String(),
			"announced_id", announcedID,
			"authenticated_id", sess.UserID(),
		)
		return false
	}

	s.hub.Register(conn)
	s.logger.Info("user online",
		"user_id", sess.UserID(),
		"conn_id", conn.GetID(),
	)

	s.broadcastPresence()
	s.exportStatus(ctx, sess.UserID(), true)
	return true
}

// Disconnect tears the session down. Presence is removed only when this
// connection still owns the registry entry; a superseded connection
// disconnecting late leaves its successor untouched and triggers no
// broadcast.
func (s *DeliveryService) Disconnect(ctx context.Context, sess *model.Session, conn registry.Connector) {
	wasActive := sess.Close()

	if wasActive && s.hub.Deregister(sess.UserID(), conn.GetID()) {
		s.logger.Info("user offline",
			"user_id", sess.UserID(),
			"conn_id", conn.GetID(),
		)
		s.broadcastPresence()
		s.exportStatus(ctx, sess.UserID(), false)
	}

	conn.Close()
}

// broadcastPresence pushes the current online-user snapshot to every
// connection. The snapshot is taken before any send so the registry lock is
// never held across a push.
func (s *DeliveryService) broadcastPresence() {
	payload := &model.OnlineUsersPayload{UserIDs: s.hub.ListOnline()}
	ev := event.NewSystemEvent("", event.PresenceChanged, event.PriorityNormal, payload)
	s.hub.BroadcastAll(ev)
}

func (s *DeliveryService) exportStatus(ctx context.Context, userID string, online bool) {
	if s.exporter == nil {
		return
	}
	if err := s.exporter.Publish(ctx, event.NewUserStatusEvent(userID, online)); err != nil {
		// Status export is best-effort; presence handling must not depend
		// on the bus being reachable.
		s.logger.Warn("user status export failed", "user_id", userID, "err", err)
	}
}
