package sink

import (
	"screenlog/internal/app/logs"
)

// Render draws delivered entries on the screen collaborator
type Render struct {
	screen    Screen
	formatter *logs.Formatter
}

// NewRender creates a render sink
func NewRender(screen Screen, formatter *logs.Formatter) *Render {
	return &Render{
		screen:    screen,
		formatter: formatter,
	}
}

// Name returns the sink name
func (r *Render) Name() string {
	return NameRender
}

// Enabled is always true; the pipeline switch governs rendering
func (r *Render) Enabled() bool {
	return true
}

// Accepts accepts every entry
func (r *Render) Accepts(logs.Entry) bool {
	return true
}

// Deliver appends the formatted entry to the screen
func (r *Render) Deliver(entry logs.Entry) error {
	r.screen.Append(r.formatter.Format(entry))

	return nil
}
