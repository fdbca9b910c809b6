package engine

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(
			NewManager, // *Manager
		),
	)
}
