package main

import (
	"context"
	"log"

	"signal_scanner/internal/engine"
	"signal_scanner/internal/instruments"
	"signal_scanner/internal/modules/boxes_ws"
	"signal_scanner/internal/modules/config"
	"signal_scanner/internal/modules/forwarder"
	"signal_scanner/internal/modules/health"
	"signal_scanner/internal/modules/postgres"
	"signal_scanner/internal/modules/scanner"
	"signal_scanner/internal/notify"
	"signal_scanner/pkg/logger"
	"signal_scanner/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
			instruments.New,
			func(r *instruments.Resolver) engine.PointResolver { return r },
		),
		config.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			logger.SetServiceName(cfg.Service.Name)
			tracing.SetServiceName(cfg.Service.Name)
			if cfg.Jaeger.Host == "" {
				return
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{Host: cfg.Jaeger.Host, Port: cfg.Jaeger.Port})
			if err != nil {
				logger.Error("jaeger init failed, tracing disabled: %v", err)
				return
			}
			lc.Append(fx.Hook{OnStop: func(context.Context) error {
				closeTracer()
				return nil
			}})
		}),
		postgres.Module(),
		scanner.Module(),
		engine.Module(),
		notify.Module(),
		forwarder.Module(),
		boxes_ws.Module(),
		health.Module(),
	)
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
	<-app.Wait()
}
