package screen

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/term"

	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

const clearSequence = "\x1b[H\x1b[2J"

// Screen is the terminal the pipeline renders lines on
type Screen interface {
	Append(line string)
	Refresh(lines []string)
	Clear()
	SetLimit(n int)
	SetTextSize(size string)
	Lines() []string
	TextSize() string
}

type terminal struct {
	mu       sync.Mutex
	out      io.Writer
	fd       uintptr
	tty      bool
	lines    []string
	limit    int
	textSize string
	log      logger.Logger
}

// NewScreen creates a screen drawing on stdout
func NewScreen(cfg *config.Config, log logger.Logger) Screen {
	fd := os.Stdout.Fd()

	return newTerminal(cfg, os.Stdout, fd, term.IsTerminal(fd), log)
}

// NewScreenWithOutput creates a screen drawing on out; only a tty output can be redrawn in place
func NewScreenWithOutput(cfg *config.Config, out io.Writer, tty bool, log logger.Logger) Screen {
	return newTerminal(cfg, out, 0, tty, log)
}

func newTerminal(cfg *config.Config, out io.Writer, fd uintptr, tty bool, log logger.Logger) *terminal {
	return &terminal{
		out:      out,
		fd:       fd,
		tty:      tty,
		limit:    cfg.Buffer.Limit,
		textSize: cfg.Features.TextSize,
		log:      log.WithComponent("SCREEN"),
	}
}

// Append prints one line below the previous ones
func (t *terminal) Append(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, line)
	t.trim()

	fmt.Fprintln(t.out, line)
}

// Refresh replaces the displayed lines; output that is not a terminal keeps what was printed
func (t *terminal) Refresh(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append([]string(nil), lines...)
	t.trim()

	t.redraw()
}

// Clear removes every displayed line
func (t *terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = nil

	if t.tty {
		fmt.Fprint(t.out, clearSequence)
	}
}

// SetLimit bounds the number of kept lines
func (t *terminal) SetLimit(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 {
		return
	}

	t.limit = n
	t.trim()
}

// SetTextSize records the requested text size; terminals keep their own font
func (t *terminal) SetTextSize(size string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.textSize = size
	t.log.Debug().Msgf("Text size set to %s", size)
}

// Lines returns a copy of the displayed lines
func (t *terminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.lines...)
}

// TextSize returns the last requested text size
func (t *terminal) TextSize() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.textSize
}

func (t *terminal) trim() {
	if t.limit > 0 && len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

// redraw repaints the visible tail of lines; callers hold mu
func (t *terminal) redraw() {
	if !t.tty {
		return
	}

	visible := t.lines

	if _, height, err := term.GetSize(t.fd); err == nil && height > 1 && len(visible) > height-1 {
		visible = visible[len(visible)-(height-1):]
	}

	fmt.Fprint(t.out, clearSequence)

	for _, line := range visible {
		fmt.Fprintln(t.out, line)
	}
}
