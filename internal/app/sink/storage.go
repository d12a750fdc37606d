package sink

import (
	"encoding/json"
	"fmt"
	"sync"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/app/storage"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

// Storage persists delivered entries as a capped JSON array under one key
type Storage struct {
	mu      sync.Mutex
	store   storage.Store
	key     string
	limit   int
	enabled bool
	log     logger.Logger
}

// NewStorage creates a storage sink over store
func NewStorage(store storage.Store, key string, limit int, enabled bool, log logger.Logger) *Storage {
	return &Storage{
		store:   store,
		key:     key,
		limit:   limit,
		enabled: enabled,
		log:     log.WithComponent("STORAGE"),
	}
}

// NewStorageFromConfig creates a storage sink from the storage section of the configuration
func NewStorageFromConfig(cfg *config.Config, store storage.Store, log logger.Logger) *Storage {
	return NewStorage(store, cfg.Storage.Key, cfg.Storage.Limit, cfg.Storage.Enabled, log)
}

// Name returns the sink name
func (s *Storage) Name() string {
	return NameStorage
}

// Enabled reports whether the sink still writes
func (s *Storage) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enabled
}

// SetEnabled enables/disables the sink
func (s *Storage) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
}

// Accepts accepts every entry
func (s *Storage) Accepts(logs.Entry) bool {
	return true
}

// Deliver appends entry to the stored array, evicting the oldest entries over the limit.
// Any failure disables the sink for the rest of the session.
func (s *Storage) Deliver(entry logs.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}

	if err := s.append(entry); err != nil {
		s.enabled = false
		s.log.Error().Err(err).Msgf("Storage disabled after failed write of entry %d", entry.Sequence)

		return fmt.Errorf("%w: %w", errors.ErrSinkDisabled, err)
	}

	return nil
}

func (s *Storage) append(entry logs.Entry) error {
	stored, err := s.read()
	if err != nil {
		return err
	}

	stored = append(stored, logs.NewLogMessage(entry))
	if len(stored) > s.limit {
		stored = stored[len(stored)-s.limit:]
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStorageFailed, err)
	}

	if err := s.store.Set(s.key, data); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStorageFailed, err)
	}

	return nil
}

// read returns the stored messages, treating a missing key as empty
func (s *Storage) read() ([]logs.LogMessage, error) {
	data, err := s.store.Get(s.key)
	if errors.Is(err, errors.ErrStorageNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrStorageFailed, err)
	}

	var stored []logs.LogMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrCorruptStorage, err)
	}

	return stored, nil
}

// Load returns the persisted entries, oldest first.
// Missing data yields no entries; corrupt data yields no entries and ErrCorruptStorage, leaving it in place.
func (s *Storage) Load() ([]logs.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.read()
	if err != nil {
		return []logs.Entry{}, err
	}

	entries := make([]logs.Entry, len(stored))
	for i, msg := range stored {
		entries[i] = msg.Entry()
	}

	return entries, nil
}

// Reset deletes the persisted entries
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(s.key); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStorageFailed, err)
	}

	return nil
}
