package amqp

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/fx"

	"github.com/opengram/realtime-delivery-service/config"
	pubsubadapter "github.com/opengram/realtime-delivery-service/internal/adapter/pubsub"
)

var Module = fx.Module("amqp-handler",
	fx.Provide(
		NewSocialEventHandler,
		NewWatermillRouter,
	),

	fx.Invoke(func(
		lc fx.Lifecycle,
		router *message.Router,
		h *SocialEventHandler,
		subProvider *pubsubadapter.SubscriberProvider,
		cfg *config.Config,
	) error {
		if err := h.RegisterHandlers(router, subProvider, cfg.Broker.ConsumeExchange); err != nil {
			return err
		}

		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					if err := router.Run(context.Background()); err != nil {
						h.logger.Error("amqp router stopped", "err", err)
					}
				}()
				return nil
			},
			OnStop: func(context.Context) error {
				return router.Close()
			},
		})
		return nil
	}),
)
