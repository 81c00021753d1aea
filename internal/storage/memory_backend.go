package storage

import (
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// MemoryBackend runs an embedded Redis server inside the process. Data lives
// as long as the process does, like a browser profile's local storage.
type MemoryBackend struct {
	*RedisBackend
	server *miniredis.Miniredis
}

func NewMemoryBackend() (*MemoryBackend, error) {
	server, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start embedded store: %w", err)
	}

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return &MemoryBackend{
		RedisBackend: NewRedisBackend(client),
		server:       server,
	}, nil
}

// Server exposes the embedded server, mainly so tests can inspect or corrupt
// raw values.
func (b *MemoryBackend) Server() *miniredis.Miniredis {
	return b.server
}

func (b *MemoryBackend) Close() error {
	err := b.RedisBackend.Close()
	b.server.Close()
	return err
}
