package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/opengram/realtime-delivery-service/config"
	"github.com/opengram/realtime-delivery-service/internal/service"
)

var Module = fx.Module("mongo",
	fx.Provide(
		func(lc fx.Lifecycle, cfg *config.Config) (*mongo.Database, error) {
			db, err := NewDB(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
			if err != nil {
				return nil, err
			}
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					return db.Client().Disconnect(ctx)
				},
			})
			return db, nil
		},
		fx.Annotate(
			NewMessageStore,
			fx.As(new(service.MessageStore)),
		),
		fx.Annotate(
			NewNotificationStore,
			fx.As(new(service.NotificationStore)),
		),
		fx.Annotate(
			NewDirectory,
			fx.As(new(service.UserDirectory)),
			fx.As(new(service.PostDirectory)),
		),
	),
)
