package service

import (
	"log/slog"

	"github.com/opengram/realtime-delivery-service/config"
	"go.uber.org/fx"
)

var Module = fx.Module(
	"service",

	fx.Provide(
		fx.Annotate(
			func(cfg *config.Config) *AuthService { return NewAuthService(cfg.Auth.Secret) },
			fx.As(new(Auther)),
		),
		fx.Annotate(
			NewDeliveryService,
			fx.As(new(Deliverer)),
		),
		fx.Annotate(
			NewMessageService,
			fx.As(new(Messenger)),
		),
		fx.Annotate(
			NewNotifyService,
			fx.As(new(Notifier)),
		),
		fx.Annotate(
			NewUserEnricherService,
			fx.As(new(Enricher)),
		),
	),

	// Intercept the Enricher to add timing and outcome logging.
	fx.Decorate(func(orig Enricher, logger *slog.Logger) Enricher {
		return &EnricherMiddleware{
			Next:   orig,
			Logger: logger,
		}
	}),
)
