//go:generate mockgen -source=controller.go -destination=controller_mock.go -package=remote
package remote

import (
	"context"

	"screenlog/internal/app/logs"
)

// Controller is the pipeline surface the command table drives
type Controller interface {
	Emit(level logs.Level, values ...any)
	MergeLevels(levels map[string]bool) error
	Levels() map[string]bool
	ClearLogs()
	SetLogLimit(limit int) error
	SetTextSize(size string) error
	SetFeature(name string, enabled bool) error
	ExecuteScript(ctx context.Context, script string) error
	Reload() error
	EntryCount() int
}
