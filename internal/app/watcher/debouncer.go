package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects change notifications and reports them once the burst is over
type Debouncer interface {
	Trigger(path string)
	Stop()
}

type debouncer struct {
	delay    time.Duration
	onSettle func(paths []string)
	timer    *time.Timer
	pending  map[string]struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewDebouncer creates a Debouncer calling onSettle with the sorted changed paths after delay of quiet
func NewDebouncer(delay time.Duration, onSettle func(paths []string)) Debouncer {
	return &debouncer{
		delay:    delay,
		onSettle: onSettle,
		pending:  make(map[string]struct{}),
	}
}

// Trigger records a changed path and restarts the quiet period
func (d *debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, d.settle)
}

// Stop drops pending paths; later triggers are ignored
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	clear(d.pending)
}

func (d *debouncer) settle() {
	d.mu.Lock()

	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}

	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}

	slices.Sort(paths)
	clear(d.pending)
	d.timer = nil

	d.mu.Unlock()

	d.onSettle(paths)
}
