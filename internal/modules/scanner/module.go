package scanner

import (
	"signal_scanner/internal/modules/scanner/service"
	"signal_scanner/pkg/logger"

	"go.uber.org/fx"
)

// Module builds the immutable path catalog once at startup.
func Module() fx.Option {
	return fx.Module("scanner",
		fx.Provide(service.New),
		fx.Invoke(func(s *service.Scanner) {
			logger.Info("path catalog built: %d paths", s.PathCount())
		}),
	)
}
