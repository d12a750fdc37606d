package logs

import (
	"fmt"
	"math"
	"time"

	"screenlog/internal/app/errors"
	"screenlog/internal/config"
)

// Buffer holds the captured entries of one pipeline under two bounds:
// the display view (entries kept visible) and the history (entries kept for re-filtering)
type Buffer interface {
	Append(level Level, text string) Entry
	SetDisplayCapacity(n int) error
	SetHistoryCapacity(n int) error
	DisplayCapacity() int
	HistoryCapacity() int
	Clear()
	Snapshot() []Entry
	History() []Entry
	Len() int
}

// buffer keeps history as a FIFO slice; the display view is its newest displayCap entries
type buffer struct {
	entries      []Entry
	displayCap   int
	requestedCap int
	sequence     uint64
	now          func() time.Time
}

// NewBuffer creates a buffer with the given display capacity and history capacity, 0 meaning automatic
func NewBuffer(display, history int) (Buffer, error) {
	if display <= 0 || history < 0 {
		return nil, fmt.Errorf("%w: display %d, history %d", errors.ErrInvalidCapacity, display, history)
	}

	return &buffer{
		entries:      []Entry{},
		displayCap:   display,
		requestedCap: history,
		now:          time.Now,
	}, nil
}

// NewBufferFromConfig creates a buffer sized from the buffer section of the configuration
func NewBufferFromConfig(cfg *config.Config) (Buffer, error) {
	return NewBuffer(cfg.Buffer.Limit, cfg.Buffer.History)
}

// Append records a new entry with the next sequence number and evicts the oldest entries over capacity
func (b *buffer) Append(level Level, text string) Entry {
	b.sequence++

	entry := Entry{
		Sequence: b.sequence,
		Time:     b.now().UnixMilli(),
		Level:    level,
		Text:     text,
	}

	b.entries = append(b.entries, entry)
	b.evict()

	return entry
}

// SetDisplayCapacity changes how many entries stay visible
func (b *buffer) SetDisplayCapacity(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", errors.ErrInvalidCapacity, n)
	}

	b.displayCap = n
	b.evict()

	return nil
}

// SetHistoryCapacity changes how many entries are retained, never below the display headroom
func (b *buffer) SetHistoryCapacity(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", errors.ErrInvalidCapacity, n)
	}

	b.requestedCap = n
	b.evict()

	return nil
}

// DisplayCapacity returns the display bound
func (b *buffer) DisplayCapacity() int {
	return b.displayCap
}

// HistoryCapacity returns the effective history bound
func (b *buffer) HistoryCapacity() int {
	headroom := int(math.Ceil(float64(b.displayCap) * config.HistoryFactor))

	return max(b.requestedCap, headroom)
}

// Clear drops every entry and restarts sequence numbering
func (b *buffer) Clear() {
	b.entries = []Entry{}
	b.sequence = 0
}

// Snapshot returns a copy of the display view, oldest first
func (b *buffer) Snapshot() []Entry {
	start := max(0, len(b.entries)-b.displayCap)

	out := make([]Entry, len(b.entries)-start)
	copy(out, b.entries[start:])

	return out
}

// History returns a copy of every retained entry, oldest first
func (b *buffer) History() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)

	return out
}

// Len returns the number of retained entries
func (b *buffer) Len() int {
	return len(b.entries)
}

func (b *buffer) evict() {
	limit := b.HistoryCapacity()
	if len(b.entries) > limit {
		b.entries = append([]Entry(nil), b.entries[len(b.entries)-limit:]...)
	}
}
