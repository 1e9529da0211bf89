package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"

	"github.com/opengram/realtime-delivery-service/config"
	"github.com/opengram/realtime-delivery-service/internal/handler/history"
	"github.com/opengram/realtime-delivery-service/internal/handler/lp"
	"github.com/opengram/realtime-delivery-service/internal/handler/stats"
	"github.com/opengram/realtime-delivery-service/internal/handler/ws"
)

var Module = fx.Module("http-server",
	fx.Provide(
		ws.NewWSHandler,
		history.NewHandler,
		lp.NewLPHandler,
		stats.NewHandler,
		NewRouter,
		func(cfg *config.Config, router *chi.Mux) *http.Server {
			return NewServer(cfg.HTTP.Addr, router)
		},
	),

	fx.Invoke(func(lc fx.Lifecycle, srv *http.Server, logger *slog.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					logger.Info("http server listening", "addr", srv.Addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("http server stopped", "err", err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		})
	}),
)
