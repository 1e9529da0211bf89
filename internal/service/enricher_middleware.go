package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

// EnricherMiddleware decorates an Enricher with timing and outcome logging
// without touching the lookup logic.
type EnricherMiddleware struct {
	Next   Enricher
	Logger *slog.Logger
}

func (m *EnricherMiddleware) ResolvePair(ctx context.Context, senderID, receiverID string) (model.UserRef, model.UserRef, error) {
	start := time.Now()

	s, r, err := m.Next.ResolvePair(ctx, senderID, receiverID)
	if err != nil {
		m.Logger.Warn("pair enrichment failed",
			"sender_id", senderID,
			"receiver_id", receiverID,
			"err", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		m.Logger.Debug("pair enrichment completed",
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return s, r, err
}

func (m *EnricherMiddleware) ResolveUser(ctx context.Context, id string) (model.UserRef, error) {
	start := time.Now()

	ref, err := m.Next.ResolveUser(ctx, id)
	if err != nil {
		m.Logger.Warn("user enrichment failed",
			"user_id", id,
			"err", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return ref, err
}

func (m *EnricherMiddleware) ResolvePost(ctx context.Context, id string) (*model.PostRef, error) {
	post, err := m.Next.ResolvePost(ctx, id)
	if err != nil {
		m.Logger.Warn("post enrichment failed", "post_id", id, "err", err)
	}
	return post, err
}
