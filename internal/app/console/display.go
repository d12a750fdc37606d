package console

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/gobwas/glob"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
)

var (
	deviceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true)
)

// Display prints what connected devices send
type Display interface {
	Connected(id, remote string)
	Disconnected(id string, code int)
	Show(id string, data []byte)
	Notice(text string)
}

type display struct {
	out       io.Writer
	formatter *logs.Formatter
	match     glob.Glob
	colors    bool
	mu        sync.Mutex
}

// NewDisplay creates a Display writing to out.
// When pattern is set only entries whose message matches it are shown.
func NewDisplay(out io.Writer, formatter *logs.Formatter, pattern string, colors bool) (Display, error) {
	d := &display{
		out:       out,
		formatter: formatter,
		colors:    colors,
	}

	if pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s': %w", errors.ErrInvalidMatchPattern, pattern, err)
		}

		d.match = g
	}

	formatter.SetColors(colors)

	return d, nil
}

// Connected announces a new device
func (d *display) Connected(id, remote string) {
	d.Notice(fmt.Sprintf("%s connected from %s", id, remote))
}

// Disconnected announces a device that went away
func (d *display) Disconnected(id string, code int) {
	d.Notice(fmt.Sprintf("%s disconnected (code %d)", id, code))
}

// Show prints one device frame: log entries through the formatter, pong replies as a summary
func (d *display) Show(id string, data []byte) {
	var envelope logs.MessageEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		d.print(id, fmt.Sprintf("unreadable frame: %s", data))
		return
	}

	switch envelope.Type {
	case logs.MessagePong:
		var pong logs.PongMessage
		if err := json.Unmarshal(data, &pong); err != nil {
			d.print(id, fmt.Sprintf("unreadable pong: %s", data))
			return
		}

		d.print(id, pongSummary(pong))
	case "":
		var msg logs.LogMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			d.print(id, fmt.Sprintf("unreadable entry: %s", data))
			return
		}

		if d.match != nil && !d.match.Match(msg.Message) {
			return
		}

		d.print(id, d.formatter.Format(msg.Entry()))
	default:
		d.print(id, fmt.Sprintf("unknown frame type '%s'", envelope.Type))
	}
}

// Notice prints a console status line
func (d *display) Notice(text string) {
	if d.colors {
		text = noticeStyle.Render(text)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintln(d.out, text)
}

func (d *display) print(id, line string) {
	label := "[" + id + "]"
	if d.colors {
		label = deviceStyle.Render(label)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "%s %s\n", label, line)
}

func pongSummary(pong logs.PongMessage) string {
	summary := fmt.Sprintf("pong: %d entries", pong.Entries)

	if s := pong.Stats; s != nil {
		summary += fmt.Sprintf(", pid %d, cpu %.1f%%, rss %.1f MB, %d goroutines",
			s.PID, s.CPUPercent, float64(s.RSS)/(1024*1024), s.Goroutines)
	}

	return summary
}
