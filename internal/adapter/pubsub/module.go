package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/fx"

	"github.com/opengram/realtime-delivery-service/config"
	infrapubsub "github.com/opengram/realtime-delivery-service/infra/pubsub"
	"github.com/opengram/realtime-delivery-service/internal/service"
)

var Module = fx.Module("pubsub",
	fx.Provide(
		func(cfg *config.Config, logger watermill.LoggerAdapter) *infrapubsub.Factory {
			return infrapubsub.NewFactory(cfg.Broker.URL, logger)
		},

		NewPublisherProvider,
		NewSubscriberProvider,

		// The dispatcher publishes to the export exchange; consumed topics
		// live on a separate exchange owned by the REST backend.
		func(pp *PublisherProvider, cfg *config.Config) (EventDispatcher, error) {
			pub, err := pp.Build(cfg.Broker.ExportExchange)
			if err != nil {
				return nil, err
			}
			return NewEventDispatcher(pub), nil
		},
		func(d EventDispatcher) service.Exporter { return d },
	),
)
