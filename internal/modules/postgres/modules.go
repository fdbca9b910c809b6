package postgres

import (
	"context"
	"fmt"

	"signal_scanner/internal/engine"
	"signal_scanner/internal/modules/config"
	"signal_scanner/internal/store/pg/signals"
	"signal_scanner/pkg/db"

	"go.uber.org/fx"
)

// Module поднимает пул и стор сигналов.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				err = poolMaster.Ping(ctx)
				if err != nil {
					return nil, err
				}

				return db.NewPgTxManager(poolMaster), nil
			},
			signals.New, // *signals.Signals
			func(s *signals.Signals) engine.SignalStore { return s },
		),
	)
}
