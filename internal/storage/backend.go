// Package storage persists the portal's collections as JSON values in a
// key-value backend, one key per collection.
package storage

import (
	"context"
	"errors"
)

// Backend is the key-value store underneath a Store. Values are opaque
// strings; a Set replaces the previous value in a single write.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

var (
	ErrKeyNotFound        = errors.New("storage key not found")
	ErrBackendUnavailable = errors.New("storage backend not available")
)

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Open builds the backend named by driver. url is the Redis URL for
// DriverRedis and the Postgres DSN for DriverPostgres; it is ignored for
// DriverMemory.
func Open(ctx context.Context, driver, url string) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch driver {
	case DriverMemory, "":
		backend, err = NewMemoryBackend()
	case DriverRedis:
		backend, err = OpenRedis(ctx, url)
	case DriverPostgres:
		backend, err = OpenPostgres(ctx, url)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
	if err != nil {
		return nil, err
	}

	return backend, nil
}
