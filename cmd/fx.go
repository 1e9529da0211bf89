package cmd

import (
	"go.uber.org/fx"

	"github.com/opengram/realtime-delivery-service/config"
	httpsrv "github.com/opengram/realtime-delivery-service/infra/server/http"
	mongoadapter "github.com/opengram/realtime-delivery-service/internal/adapter/mongo"
	pubsubadapter "github.com/opengram/realtime-delivery-service/internal/adapter/pubsub"
	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
	amqphandler "github.com/opengram/realtime-delivery-service/internal/handler/amqp"
	"github.com/opengram/realtime-delivery-service/internal/service"
)

func NewApp(cfg *config.Config) *fx.App {
	return fx.New(
		fx.Provide(
			func() *config.Config { return cfg },
			ProvideLogger,
			ProvideWatermillLogger,
		),
		fx.Invoke(SetupTelemetry),

		registry.Module,
		service.Module,
		mongoadapter.Module,
		pubsubadapter.Module,
		amqphandler.Module,
		httpsrv.Module,
	)
}
