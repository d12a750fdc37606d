package sink

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"screenlog/internal/app/logs"
	"screenlog/internal/config/logger"
)

// ConsoleMirror copies delivered entries to the process logger
type ConsoleMirror struct {
	enabled atomic.Bool
	log     logger.Logger
}

// NewConsoleMirror creates a console mirror sink
func NewConsoleMirror(log logger.Logger, enabled bool) *ConsoleMirror {
	m := &ConsoleMirror{log: log.WithComponent("MIRROR")}
	m.enabled.Store(enabled)

	return m
}

// Name returns the sink name
func (m *ConsoleMirror) Name() string {
	return NameConsole
}

// Enabled reports whether mirroring is on
func (m *ConsoleMirror) Enabled() bool {
	return m.enabled.Load()
}

// SetEnabled enables/disables mirroring
func (m *ConsoleMirror) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// Accepts accepts every entry
func (m *ConsoleMirror) Accepts(logs.Entry) bool {
	return true
}

// Deliver writes the entry to the logger at the matching level
func (m *ConsoleMirror) Deliver(entry logs.Entry) error {
	m.event(entry.Level).
		Uint64("sequence", entry.Sequence).
		Str("entry_level", string(entry.Level)).
		Msg(entry.Text)

	return nil
}

func (m *ConsoleMirror) event(level logs.Level) *zerolog.Event {
	switch level {
	case logs.LevelDebug:
		return m.log.Debug()
	case logs.LevelWarn:
		return m.log.Warn()
	case logs.LevelError:
		return m.log.Error()
	default:
		return m.log.Info()
	}
}
