package screen

import "go.uber.org/fx"

// Module provides the terminal screen
var Module = fx.Options(
	fx.Provide(NewScreen),
)
