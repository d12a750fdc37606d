package storage

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"screenlog/internal/app/errors"
)

// localStore persists values in a goleveldb directory across restarts
type localStore struct {
	mu    sync.Mutex
	db    *leveldb.DB
	quota int64
}

// NewLocalStore opens (or creates) the leveldb database at path
func NewLocalStore(path string, quota int64) (Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrFailedToOpenStore, path, err)
	}

	return &localStore{db: db, quota: quota}, nil
}

// Get returns the value stored under key
func (s *localStore) Get(key string) ([]byte, error) {
	value, err := s.db.Get([]byte(key), nil)
	switch {
	case err == nil:
		return value, nil
	case err == leveldb.ErrNotFound:
		return nil, fmt.Errorf("%w: '%s'", errors.ErrStorageNotFound, key)
	case err == leveldb.ErrClosed:
		return nil, errors.ErrStoreClosed
	default:
		return nil, fmt.Errorf("%w: %w", errors.ErrStorageFailed, err)
	}
}

// Set stores value under key unless the database would exceed the quota
func (s *localStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used, err := s.usedExcept(key)
	if err != nil {
		return err
	}

	size := used + int64(len(key)+len(value))
	if exceeds(s.quota, size) {
		return fmt.Errorf("%w: %d of %d bytes", errors.ErrQuotaExceeded, size, s.quota)
	}

	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return s.wrap(err)
	}

	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *localStore) Delete(key string) error {
	if err := s.db.Delete([]byte(key), nil); err != nil {
		return s.wrap(err)
	}

	return nil
}

// Close closes the database
func (s *localStore) Close() error {
	if err := s.db.Close(); err != nil {
		return s.wrap(err)
	}

	return nil
}

// usedExcept sums key and value sizes of every record other than key
func (s *localStore) usedExcept(key string) (int64, error) {
	var used int64

	iter := s.db.NewIterator(nil, nil)
	for iter.Next() {
		if string(iter.Key()) == key {
			continue
		}

		used += int64(len(iter.Key()) + len(iter.Value()))
	}

	iter.Release()

	if err := iter.Error(); err != nil {
		return 0, s.wrap(err)
	}

	return used, nil
}

func (s *localStore) wrap(err error) error {
	if err == leveldb.ErrClosed {
		return errors.ErrStoreClosed
	}

	return fmt.Errorf("%w: %w", errors.ErrStorageFailed, err)
}
