package script

import "go.uber.org/fx"

// Module provides the script runner and its dependencies
var Module = fx.Options(
	fx.Provide(NewRunner),
)
