package storage

import (
	"sync"

	"screenlog/internal/config"
)

// lazyStore defers opening the configured backend until the first access
type lazyStore struct {
	once  sync.Once
	open  func() (Store, error)
	store Store
	err   error
}

// NewLazyStore returns a store that opens the configured backend on first use
func NewLazyStore(cfg *config.Config) Store {
	return &lazyStore{
		open: func() (Store, error) {
			return NewStore(cfg)
		},
	}
}

func (l *lazyStore) get() (Store, error) {
	l.once.Do(func() {
		l.store, l.err = l.open()
	})

	return l.store, l.err
}

// Get opens the backend if needed and reads key
func (l *lazyStore) Get(key string) ([]byte, error) {
	s, err := l.get()
	if err != nil {
		return nil, err
	}

	return s.Get(key)
}

// Set opens the backend if needed and writes key
func (l *lazyStore) Set(key string, value []byte) error {
	s, err := l.get()
	if err != nil {
		return err
	}

	return s.Set(key, value)
}

// Delete opens the backend if needed and removes key
func (l *lazyStore) Delete(key string) error {
	s, err := l.get()
	if err != nil {
		return err
	}

	return s.Delete(key)
}

// Close closes the backend if it was ever opened
func (l *lazyStore) Close() error {
	opened := true

	l.once.Do(func() {
		opened = false
	})

	if !opened || l.store == nil {
		return nil
	}

	return l.store.Close()
}
