package amqp

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/opengram/realtime-delivery-service/internal/adapter/pubsub"
	"github.com/opengram/realtime-delivery-service/internal/service"
)

const (
	// ------------------- TOPICS (ROUTING KEYS) -----------------
	TopicPostLiked     = "social.#.post.liked.v1"
	TopicPostCommented = "social.#.post.commented.v1"
	TopicUserFollowed  = "social.#.user.followed.v1"

	// ------------------- QUEUES (CONSUMERS) --------------------
	SocialProcessorQueue = "delivery.social-processor.v1"
	SocialPoisonTopic    = "delivery.social-processor.v1.poison"
)

// SocialEventHandler consumes the domain events the REST backend publishes
// and turns them into stored notifications plus live pushes.
type SocialEventHandler struct {
	notifier   service.Notifier
	logger     *slog.Logger
	dispatcher pubsub.EventDispatcher
}

func NewSocialEventHandler(notifier service.Notifier, logger *slog.Logger, dispatcher pubsub.EventDispatcher) *SocialEventHandler {
	return &SocialEventHandler{notifier, logger, dispatcher}
}

func NewWatermillRouter(logger watermill.LoggerAdapter) (*message.Router, error) {
	return message.NewRouter(message.RouterConfig{}, logger)
}

func (h *SocialEventHandler) RegisterHandlers(router *message.Router, subProvider *pubsub.SubscriberProvider, exchange string) error {
	poison, err := middleware.PoisonQueue(h.dispatcher.Publisher(), SocialPoisonTopic)
	if err != nil {
		return fmt.Errorf("poison queue setup: %w", err)
	}

	configs := []struct {
		name    string
		topic   string
		handler message.NoPublishHandlerFunc
	}{
		{"ON_POST_LIKED", TopicPostLiked, Bind(h, h.OnPostLikedV1)},
		{"ON_POST_COMMENTED", TopicPostCommented, Bind(h, h.OnPostCommentedV1)},
		{"ON_USER_FOLLOWED", TopicUserFollowed, Bind(h, h.OnUserFollowedV1)},
	}

	for _, c := range configs {
		// One shared durable queue per handler. Nodes compete for the same
		// queue, so every event is persisted exactly once; the push happens
		// on whichever node holds the recipient's connection, or not at all.
		handlerQueue := fmt.Sprintf("%s.%s", SocialProcessorQueue, c.name)

		sub, err := subProvider.Build(handlerQueue, exchange)
		if err != nil {
			return err
		}

		router.AddNoPublisherHandler(c.name, c.topic, sub, c.handler).AddMiddleware(
			TraceIDMiddleware,
			LoggingMiddleware(h.logger),
			NewRetryMiddleware().Middleware,
			poison,
			middleware.NewThrottle(100, time.Second).Middleware,
			middleware.Timeout(time.Second*30),
		)
	}

	h.logger.Info("amqp pipeline ready", "queue", SocialProcessorQueue, "exchange", exchange)
	return nil
}
