package amqp

import (
	"context"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/opengram/realtime-delivery-service/internal/service/dto"
)

// Every listener persists first and pushes second; an offline recipient
// keeps the stored record and reads it back over REST.

func (h *SocialEventHandler) OnPostLikedV1(ctx context.Context, raw *dto.SocialActionV1) error {
	return h.notify(ctx, raw, model.NotificationLike)
}

func (h *SocialEventHandler) OnPostCommentedV1(ctx context.Context, raw *dto.SocialActionV1) error {
	return h.notify(ctx, raw, model.NotificationComment)
}

func (h *SocialEventHandler) OnUserFollowedV1(ctx context.Context, raw *dto.SocialActionV1) error {
	return h.notify(ctx, raw, model.NotificationFollow)
}

func (h *SocialEventHandler) notify(ctx context.Context, raw *dto.SocialActionV1, typ model.NotificationType) error {
	return h.notifier.Notify(ctx, raw.RecipientID, raw.SenderID, typ, raw.PostID)
}
