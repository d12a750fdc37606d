package logs

import (
	"fmt"
	"strings"
	"time"

	"screenlog/internal/app/errors"
)

// Level is the severity of a log entry
type Level string

// Known levels, in ascending severity
const (
	LevelDebug Level = "debug"
	LevelLog   Level = "log"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Levels lists every known level in display order
var Levels = []Level{LevelDebug, LevelLog, LevelInfo, LevelWarn, LevelError}

// Valid reports whether the level is one of the known levels
func (l Level) Valid() bool {
	switch l {
	case LevelDebug, LevelLog, LevelInfo, LevelWarn, LevelError:
		return true
	default:
		return false
	}
}

// Label returns the bracketed upper-case label used in rendered lines
func (l Level) Label() string {
	return "[" + strings.ToUpper(string(l)) + "]"
}

// ParseLevel converts a level name into a Level
func ParseLevel(name string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(name)))
	if !level.Valid() {
		return "", fmt.Errorf("%w: '%s'", errors.ErrInvalidLevel, name)
	}

	return level, nil
}

// Entry is one captured log record
type Entry struct {
	Sequence uint64
	Time     int64
	Level    Level
	Text     string
}

// Timestamp returns the capture time of the entry
func (e Entry) Timestamp() time.Time {
	return time.UnixMilli(e.Time)
}

// LevelFilter is the enablement mask over the known levels
type LevelFilter struct {
	enabled map[Level]bool
}

// DefaultLevelFilter returns a filter with every level except debug enabled
func DefaultLevelFilter() *LevelFilter {
	return &LevelFilter{
		enabled: map[Level]bool{
			LevelDebug: false,
			LevelLog:   true,
			LevelInfo:  true,
			LevelWarn:  true,
			LevelError: true,
		},
	}
}

// Allows reports whether entries of the given level pass the filter
func (f *LevelFilter) Allows(level Level) bool {
	return f.enabled[level]
}

// Replace sets the whole mask at once: listed levels take the given value, unlisted become disabled.
// Nothing changes when no recognized level is present.
func (f *LevelFilter) Replace(levels map[string]bool) error {
	recognized := recognize(levels)
	if len(recognized) == 0 {
		return errors.ErrNoValidLevels
	}

	next := make(map[Level]bool, len(Levels))
	for _, level := range Levels {
		next[level] = recognized[level]
	}

	f.enabled = next

	return nil
}

// Merge updates only the recognized levels present in the input
func (f *LevelFilter) Merge(levels map[string]bool) error {
	recognized := recognize(levels)
	if len(recognized) == 0 {
		return errors.ErrNoValidLevels
	}

	for level, enabled := range recognized {
		f.enabled[level] = enabled
	}

	return nil
}

// Snapshot returns a copy of the mask keyed by level name
func (f *LevelFilter) Snapshot() map[string]bool {
	out := make(map[string]bool, len(f.enabled))
	for level, enabled := range f.enabled {
		out[string(level)] = enabled
	}

	return out
}

func recognize(levels map[string]bool) map[Level]bool {
	recognized := make(map[Level]bool, len(levels))

	for name, enabled := range levels {
		if level, err := ParseLevel(name); err == nil {
			recognized[level] = enabled
		}
	}

	return recognized
}
