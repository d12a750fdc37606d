package logs

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"screenlog/internal/config"
)

// TimestampFormat is the absolute timestamp layout of rendered lines
const TimestampFormat = "15:04:05.000"

// Level colors
var (
	ColorDebug = lipgloss.Color("#6666FF")
	ColorLog   = lipgloss.Color("#333333")
	ColorInfo  = lipgloss.Color("#0088CC")
	ColorWarn  = lipgloss.Color("#FF9900")
	ColorError = lipgloss.Color("#FF3333")
)

// Formatter renders entries as display lines: "N) [LEVEL] [time]: text"
type Formatter struct {
	mu          sync.RWMutex
	colors      bool
	timeCounter bool
	styles      map[Level]lipgloss.Style
	now         func() time.Time
}

// NewFormatter creates a new Formatter using the feature toggles of the configuration
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{
		colors:      cfg.Features.Colors,
		timeCounter: cfg.Features.TimeCounter,
		styles: map[Level]lipgloss.Style{
			LevelDebug: lipgloss.NewStyle().Foreground(ColorDebug),
			LevelLog:   lipgloss.NewStyle().Foreground(ColorLog),
			LevelInfo:  lipgloss.NewStyle().Foreground(ColorInfo),
			LevelWarn:  lipgloss.NewStyle().Foreground(ColorWarn),
			LevelError: lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		},
		now: time.Now,
	}
}

// SetColors enables/disables level colors
func (f *Formatter) SetColors(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.colors = enabled
}

// SetTimeCounter switches between absolute timestamps and relative "-Ns" ages
func (f *Formatter) SetTimeCounter(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.timeCounter = enabled
}

// TimeCounter reports whether relative ages are rendered
func (f *Formatter) TimeCounter() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.timeCounter
}

// Line renders an entry without styling
func (f *Formatter) Line(e Entry) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.line(e)
}

// Format renders an entry, colored by level when colors are enabled
func (f *Formatter) Format(e Entry) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	line := f.line(e)
	if !f.colors {
		return line
	}

	style, ok := f.styles[e.Level]
	if !ok {
		return line
	}

	return style.Render(line)
}

func (f *Formatter) line(e Entry) string {
	return fmt.Sprintf("%d) %s [%s]: %s", e.Sequence, e.Level.Label(), f.timestamp(e), e.Text)
}

func (f *Formatter) timestamp(e Entry) string {
	if f.timeCounter {
		age := float64(f.now().UnixMilli()-e.Time) / 1000

		return fmt.Sprintf("-%ds", int64(math.Round(age)))
	}

	return e.Timestamp().Format(TimestampFormat)
}
