//go:generate mockgen -source=store.go -destination=store_mock.go -package=storage
package storage

import (
	"fmt"

	"screenlog/internal/app/errors"
	"screenlog/internal/config"
)

// Store is a keyed byte store with a size quota
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// NewStore opens the backend selected by the storage section of the configuration
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Type {
	case config.StorageSession:
		return NewSessionStore(cfg.Storage.Quota), nil
	case config.StorageLocal:
		return NewLocalStore(cfg.Storage.Path, cfg.Storage.Quota)
	default:
		return nil, fmt.Errorf("%w: got '%s'", errors.ErrInvalidStorageType, cfg.Storage.Type)
	}
}

// exceeds reports whether size breaks the quota, a non-positive quota meaning unlimited
func exceeds(quota, size int64) bool {
	return quota > 0 && size > quota
}
