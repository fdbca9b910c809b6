package notify

import (
	"signal_scanner/internal/engine"
	"signal_scanner/internal/modules/config"
	"signal_scanner/pkg/logger"

	"go.uber.org/fx"
)

// Module выбирает Telegram или stdout по конфигу.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(cfg *config.Config) Notifier {
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					return NewStdout()
				}
				t, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
				if err != nil {
					logger.Error("telegram init failed, falling back to stdout: %v", err)
					return NewStdout()
				}
				return t
			},
			func(n Notifier) engine.ServiceNotifier { return n },
		),
	)
}
