package sink

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/config/logger"
)

// Outcome reports what happened to one routed entry
type Outcome struct {
	Suppressed bool
	Delivered  []string
	Failed     []string
	Disabled   []string
}

// Router fans entries out to its sinks in registration order
type Router interface {
	Route(entry logs.Entry) Outcome
	Routing() bool
	Reentrant() bool
	Suppress()
	Suppressed() uint64
	Sinks() []Sink
}

// maxCallerDepth bounds the stack walk of Reentrant
const maxCallerDepth = 128

// deliverFunc is the runtime name of router.deliver
var deliverFunc = reflect.TypeOf(router{}).PkgPath() + ".(*router).deliver"

// routing is held by the router while one entry is being delivered
type routing struct {
	sequence uint64
}

type router struct {
	mu         sync.Mutex
	sinks      []Sink
	active     *routing
	suppressed uint64
	log        logger.Logger
}

// NewRouter creates a router delivering to sinks in the given order
func NewRouter(log logger.Logger, sinks ...Sink) Router {
	return &router{
		sinks: sinks,
		log:   log.WithComponent("ROUTER"),
	}
}

// Route delivers entry to every enabled sink that accepts it.
// A Route issued while another entry is being routed is dropped.
func (r *router) Route(entry logs.Entry) Outcome {
	r.mu.Lock()

	if r.active != nil {
		r.mu.Unlock()
		r.Suppress()

		return Outcome{Suppressed: true}
	}

	r.active = &routing{sequence: entry.Sequence}
	sinks := r.sinks
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.active = nil
		r.mu.Unlock()
	}()

	var outcome Outcome

	for _, s := range sinks {
		if !s.Enabled() || !s.Accepts(entry) {
			continue
		}

		err := r.deliver(s, entry)
		if err == nil {
			outcome.Delivered = append(outcome.Delivered, s.Name())
			continue
		}

		outcome.Failed = append(outcome.Failed, s.Name())
		if errors.Is(err, errors.ErrSinkDisabled) {
			outcome.Disabled = append(outcome.Disabled, s.Name())
		}

		r.log.Warn().Err(err).Msgf("Sink '%s' failed to deliver entry %d", s.Name(), entry.Sequence)
	}

	return outcome
}

// Routing reports whether an entry is currently being delivered
func (r *router) Routing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.active != nil
}

// Reentrant reports whether the calling goroutine is inside a sink delivery.
// Other goroutines see false even while an entry is being routed.
func (r *router) Reentrant() bool {
	return r.Routing() && inDelivery()
}

// Suppress counts one dropped nested entry
func (r *router) Suppress() {
	r.mu.Lock()
	r.suppressed++

	var current uint64
	if r.active != nil {
		current = r.active.sequence
	}
	r.mu.Unlock()

	r.log.Debug().Msgf("Dropped nested entry while routing entry %d", current)
}

// Suppressed returns how many nested routes were dropped
func (r *router) Suppressed() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.suppressed
}

// Sinks returns the registered sinks in routing order
func (r *router) Sinks() []Sink {
	return append([]Sink(nil), r.sinks...)
}

// deliver calls the sink, converting a panic into an error
func (r *router) deliver(s Sink, entry logs.Entry) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("sink panicked: %v", p)
		}
	}()

	return s.Deliver(entry)
}

// inDelivery walks the caller stack looking for router.deliver
func inDelivery() bool {
	pcs := make([]uintptr, maxCallerDepth)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(2, pcs)])

	for {
		frame, more := frames.Next()
		if frame.Function == deliverFunc {
			return true
		}

		if !more {
			return false
		}
	}
}
