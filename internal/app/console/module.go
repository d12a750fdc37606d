package console

import "go.uber.org/fx"

// Module provides the operator console
var Module = fx.Options(
	fx.Provide(
		NewServer,
		NewConsole,
	),
)
