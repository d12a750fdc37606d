package remote

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the fx dependency injection options for the remote package
var Module = fx.Options(
	fx.Provide(
		NewDialer,
		NewChannel,
	),
	fx.Invoke(Register),
)

// Register closes the socket when the application stops
func Register(lifecycle fx.Lifecycle, channel Channel) {
	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			channel.Disable()
			return nil
		},
	})
}
