package boxes_ws

import (
	"context"

	"signal_scanner/internal/modules/boxes_ws/service"
	"signal_scanner/internal/modules/config"
	"signal_scanner/pkg/logger"

	"go.uber.org/fx"
)

// Module поднимает консьюмер бокс-апдейтов.
func Module() fx.Option {
	return fx.Module("boxes_ws",
		fx.Provide(
			service.NewClient,
		),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, c *service.Client) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					if cfg.BoxesWSURL == "" {
						logger.Info("BOXES_WS_URL is empty, consumer disabled")
						return nil
					}
					go c.Start(ctx)
					return nil
				},
			})
		}),
	)
}
