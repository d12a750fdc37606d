package worker

import (
	"context"

	"screenlog/internal/config"
)

// Pool bounds how many remote scripts run at the same time
type Pool interface {
	Acquire(ctx context.Context) error
	Release()
	Busy() int
}

type pool struct {
	sem chan struct{}
}

// NewWorkerPool creates a pool sized by the scripts section of the configuration
func NewWorkerPool(cfg *config.Config) Pool {
	return &pool{
		sem: make(chan struct{}, max(1, cfg.Scripts.Workers)),
	}
}

// Acquire takes a slot, blocking until one frees up or ctx is done
func (w *pool) Acquire(ctx context.Context) error {
	select {
	case w.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot
func (w *pool) Release() {
	<-w.sem
}

// Busy returns the number of taken slots
func (w *pool) Busy() int {
	return len(w.sem)
}
