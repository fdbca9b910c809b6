package forwarder

import (
	"signal_scanner/internal/engine"
	"signal_scanner/internal/modules/forwarder/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("forwarder",
		fx.Provide(
			service.NewForwarder,
			func(f *service.Forwarder) engine.Forwarder { return f },
		),
	)
}
