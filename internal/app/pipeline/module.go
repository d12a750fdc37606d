package pipeline

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the pipeline
var Module = fx.Options(
	fx.Provide(NewPipeline),
	fx.Invoke(Register),
)

// Register stops the pipeline when the application stops
func Register(lifecycle fx.Lifecycle, p Pipeline) {
	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			p.Stop()
			return nil
		},
	})
}
