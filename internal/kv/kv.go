// Package kv provides the named persistence slots the journal and reminder
// state live in. A slot holds one string value and every Put replaces it whole.
package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hpungsan/selah/internal/config"
)

// Slot is a key-value persistence service.
type Slot interface {
	// Get returns the value under key. found is false if key was never written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Put atomically replaces the value under key.
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// Open returns the slot backend selected by cfg. database is used for the
// SQLite backend and may be nil for Redis. The returned close func releases
// backend resources the caller does not own.
func Open(ctx context.Context, cfg *config.Config, database *sql.DB) (Slot, func() error, error) {
	switch cfg.Storage {
	case "", config.StorageSQLite:
		if database == nil {
			return nil, nil, fmt.Errorf("sqlite storage requires a database")
		}
		return NewSQLiteSlot(database), func() error { return nil }, nil
	case config.StorageRedis:
		client, err := OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisSlot(client), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
