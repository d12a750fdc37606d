package sink

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/config/logger"
)

// funcSink is a Sink whose delivery is a plain function
type funcSink struct {
	name    string
	enabled bool
	deliver func(entry logs.Entry) error
}

func (f *funcSink) Name() string              { return f.name }
func (f *funcSink) Enabled() bool             { return f.enabled }
func (f *funcSink) Accepts(logs.Entry) bool   { return true }
func (f *funcSink) Deliver(e logs.Entry) error { return f.deliver(e) }

func expectSink(m *MockSink, name string, enabled, accepts bool) {
	m.EXPECT().Name().Return(name).AnyTimes()
	m.EXPECT().Enabled().Return(enabled).AnyTimes()

	if enabled {
		m.EXPECT().Accepts(gomock.Any()).Return(accepts).AnyTimes()
	}
}

func Test_Route_Order(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entry := logs.Entry{Sequence: 1, Level: logs.LevelError, Text: "boom"}

	render := NewMockSink(ctrl)
	mirror := NewMockSink(ctrl)
	remote := NewMockSink(ctrl)

	expectSink(render, NameRender, true, true)
	expectSink(mirror, NameConsole, true, true)
	expectSink(remote, NameRemote, true, true)

	gomock.InOrder(
		render.EXPECT().Deliver(entry).Return(nil),
		mirror.EXPECT().Deliver(entry).Return(nil),
		remote.EXPECT().Deliver(entry).Return(nil),
	)

	r := NewRouter(logger.NewNopLogger(), render, mirror, remote)
	outcome := r.Route(entry)

	assert.Equal(t, []string{NameRender, NameConsole, NameRemote}, outcome.Delivered)
	assert.Empty(t, outcome.Failed)
	assert.False(t, outcome.Suppressed)
	assert.False(t, r.Routing())
}

func Test_Route_SkipsDisabledAndRejecting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entry := logs.Entry{Sequence: 1, Level: logs.LevelLog, Text: "x"}

	disabled := NewMockSink(ctrl)
	rejecting := NewMockSink(ctrl)
	accepting := NewMockSink(ctrl)

	expectSink(disabled, "disabled", false, false)
	expectSink(rejecting, "rejecting", true, false)
	expectSink(accepting, "accepting", true, true)

	accepting.EXPECT().Deliver(entry).Return(nil)

	outcome := NewRouter(logger.NewNopLogger(), disabled, rejecting, accepting).Route(entry)

	assert.Equal(t, []string{"accepting"}, outcome.Delivered)
}

func Test_Route_IsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entry := logs.Entry{Sequence: 4, Level: logs.LevelWarn, Text: "x"}

	failing := NewMockSink(ctrl)
	disabling := NewMockSink(ctrl)
	panicking := NewMockSink(ctrl)
	last := NewMockSink(ctrl)

	expectSink(failing, "failing", true, true)
	expectSink(disabling, "disabling", true, true)
	expectSink(panicking, "panicking", true, true)
	expectSink(last, "last", true, true)

	failing.EXPECT().Deliver(entry).Return(fmt.Errorf("network down"))
	disabling.EXPECT().Deliver(entry).Return(fmt.Errorf("%w: %w", errors.ErrSinkDisabled, errors.ErrQuotaExceeded))
	panicking.EXPECT().Deliver(entry).DoAndReturn(func(logs.Entry) error { panic("bad sink") })
	last.EXPECT().Deliver(entry).Return(nil)

	r := NewRouter(logger.NewNopLogger(), failing, disabling, panicking, last)

	var outcome Outcome

	assert.NotPanics(t, func() { outcome = r.Route(entry) })
	assert.Equal(t, []string{"last"}, outcome.Delivered)
	assert.Equal(t, []string{"failing", "disabling", "panicking"}, outcome.Failed)
	assert.Equal(t, []string{"disabling"}, outcome.Disabled)
	assert.False(t, r.Routing())
}

func Test_Route_SuppressesNestedRoutes(t *testing.T) {
	var (
		r       Router
		nested  Outcome
		seen    []uint64
		routing bool
	)

	reentrant := &funcSink{
		name:    "reentrant",
		enabled: true,
		deliver: func(e logs.Entry) error {
			seen = append(seen, e.Sequence)
			routing = r.Routing()
			nested = r.Route(logs.Entry{Sequence: e.Sequence + 100, Level: logs.LevelWarn, Text: "diagnostic"})

			return nil
		},
	}

	r = NewRouter(logger.NewNopLogger(), reentrant)

	r.Route(logs.Entry{Sequence: 1, Level: logs.LevelLog, Text: "a"})
	r.Route(logs.Entry{Sequence: 2, Level: logs.LevelLog, Text: "b"})

	assert.True(t, routing)
	assert.True(t, nested.Suppressed)
	assert.Equal(t, []uint64{1, 2}, seen)
	assert.Equal(t, uint64(2), r.Suppressed())
	assert.False(t, r.Routing())
}

func Test_Reentrant(t *testing.T) {
	var (
		r          Router
		inside     bool
		concurrent bool
	)

	s := &funcSink{
		name:    "inspecting",
		enabled: true,
		deliver: func(logs.Entry) error {
			inside = r.Reentrant()

			done := make(chan bool)
			go func() { done <- r.Reentrant() }()
			concurrent = <-done

			return nil
		},
	}

	r = NewRouter(logger.NewNopLogger(), s)

	assert.False(t, r.Reentrant())

	r.Route(logs.Entry{Sequence: 1, Level: logs.LevelLog, Text: "a"})

	assert.True(t, inside)
	assert.False(t, concurrent)
	assert.False(t, r.Reentrant())

	r.Suppress()
	assert.Equal(t, uint64(1), r.Suppressed())
}

func Test_Sinks(t *testing.T) {
	a := &funcSink{name: "a"}
	b := &funcSink{name: "b"}

	r := NewRouter(logger.NewNopLogger(), a, b)
	sinks := r.Sinks()
	sinks[0] = nil

	assert.Equal(t, []Sink{a, b}, r.Sinks())
}
