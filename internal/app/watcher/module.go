package watcher

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the config file watcher
var Module = fx.Options(
	fx.Provide(NewWatcher),
	fx.Invoke(Register),
)

// Register closes the watcher when the application stops
func Register(lifecycle fx.Lifecycle, w Watcher) {
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			w.Close()
			return nil
		},
	})
}
