package watcher

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type settled struct {
	mu    sync.Mutex
	calls [][]string
}

func (s *settled) record(paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, paths)
}

func (s *settled) snapshot() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([][]string(nil), s.calls...)
}

func Test_Debouncer_Trigger(t *testing.T) {
	s := &settled{}

	d := NewDebouncer(50*time.Millisecond, s.record)
	defer d.Stop()

	d.Trigger("screenlog.yaml")
	d.Trigger(".env")
	d.Trigger("screenlog.yaml")

	time.Sleep(120 * time.Millisecond)

	assert.Equal(t, [][]string{{".env", "screenlog.yaml"}}, s.snapshot())
}

func Test_Debouncer_CoalescesBurst(t *testing.T) {
	s := &settled{}

	d := NewDebouncer(50*time.Millisecond, s.record)
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger("screenlog.yaml")
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)

	assert.Len(t, s.snapshot(), 1)
}

func Test_Debouncer_SeparateBursts(t *testing.T) {
	s := &settled{}

	d := NewDebouncer(30*time.Millisecond, s.record)
	defer d.Stop()

	d.Trigger("a")
	time.Sleep(80 * time.Millisecond)

	d.Trigger("b")
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, [][]string{{"a"}, {"b"}}, s.snapshot())
}

func Test_Debouncer_Stop(t *testing.T) {
	tests := []struct {
		name          string
		stopFirst     bool
		triggerBefore bool
	}{
		{name: "stop cancels pending", triggerBefore: true},
		{name: "stop ignores later triggers", stopFirst: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &settled{}
			d := NewDebouncer(30*time.Millisecond, s.record)

			if tt.triggerBefore {
				d.Trigger("screenlog.yaml")
			}

			d.Stop()

			if tt.stopFirst {
				d.Trigger("screenlog.yaml")
			}

			time.Sleep(80 * time.Millisecond)

			assert.Empty(t, s.snapshot())
		})
	}
}
