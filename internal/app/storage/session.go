package storage

import (
	"fmt"
	"sync"

	"screenlog/internal/app/errors"
)

// sessionStore keeps values in memory for the lifetime of the process
type sessionStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	used   int64
	quota  int64
	closed bool
}

// NewSessionStore creates an in-memory store limited to quota bytes of keys and values
func NewSessionStore(quota int64) Store {
	return &sessionStore{
		values: make(map[string][]byte),
		quota:  quota,
	}
}

// Get returns a copy of the value stored under key
func (s *sessionStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errors.ErrStoreClosed
	}

	value, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", errors.ErrStorageNotFound, key)
	}

	return append([]byte(nil), value...), nil
}

// Set stores a copy of value under key unless it would exceed the quota
func (s *sessionStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrStoreClosed
	}

	size := s.used - s.sizeOf(key) + int64(len(key)+len(value))
	if exceeds(s.quota, size) {
		return fmt.Errorf("%w: %d of %d bytes", errors.ErrQuotaExceeded, size, s.quota)
	}

	s.values[key] = append([]byte(nil), value...)
	s.used = size

	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *sessionStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrStoreClosed
	}

	s.used -= s.sizeOf(key)
	delete(s.values, key)

	return nil
}

// Close discards every value
func (s *sessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.values = nil
	s.used = 0

	return nil
}

func (s *sessionStore) sizeOf(key string) int64 {
	value, ok := s.values[key]
	if !ok {
		return 0
	}

	return int64(len(key) + len(value))
}
