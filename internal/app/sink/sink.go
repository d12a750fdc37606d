//go:generate mockgen -source=sink.go -destination=sink_mock.go -package=sink
package sink

import (
	"screenlog/internal/app/logs"
)

// Sink names, in routing order
const (
	NameRender  = "render"
	NameConsole = "console"
	NameStorage = "storage"
	NameRemote  = "remote"
)

// Sink is a delivery target for routed entries.
// Entries a sink emits into its own pipeline while delivering are dropped;
// other calls back into that pipeline are not allowed.
type Sink interface {
	Name() string
	Enabled() bool
	Accepts(entry logs.Entry) bool
	Deliver(entry logs.Entry) error
}

// Screen is the render collaborator that displays formatted lines
type Screen interface {
	Append(line string)
	Refresh(lines []string)
	Clear()
	SetLimit(n int)
	SetTextSize(size string)
}
