package storage

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the fx dependency injection options for the storage package
var Module = fx.Options(
	fx.Provide(NewLazyStore),
	fx.Invoke(Register),
)

// Register closes the store when the application stops
func Register(lifecycle fx.Lifecycle, store Store) {
	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
