package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Collection and record key names, relative to a Store namespace.
const (
	KeyUsers       = "users"
	KeyNotes       = "notes"
	KeyQuizzes     = "quizzes"
	KeyAssignments = "assignments"
	KeySubmissions = "submissions"
	KeySession     = "session"
	KeyQuizState   = "quiz_state"
)

// DefaultNamespace reproduces the key layout of the browser portal
// (bp_users, bp_notes, ...).
const DefaultNamespace = "bp_"

// Store reads and writes JSON values under a key namespace. Views created with
// Scoped share the backend and the write lock of their parent.
type Store struct {
	backend   Backend
	namespace string
	mu        *sync.Mutex
	logger    *slog.Logger
}

func NewStore(backend Backend, namespace string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend:   backend,
		namespace: namespace,
		mu:        &sync.Mutex{},
		logger:    logger,
	}
}

// Key returns the backend key for name.
func (s *Store) Key(name string) string {
	return s.namespace + name
}

// Scoped returns a view whose keys live under prefix inside this namespace.
func (s *Store) Scoped(prefix string) *Store {
	return &Store{
		backend:   s.backend,
		namespace: s.namespace + prefix,
		mu:        s.mu,
		logger:    s.logger,
	}
}

// ForContext narrows the store to the profile carried by ctx, if any.
func (s *Store) ForContext(ctx context.Context) *Store {
	if profile, ok := ProfileFromContext(ctx); ok {
		return s.Scoped("profile:" + profile + ":")
	}
	return s
}

// Load decodes the value stored under name. It never fails: an unavailable
// backend, a missing key or malformed data all yield fallback.
func Load[T any](ctx context.Context, s *Store, name string, fallback T) T {
	raw, err := s.backend.Get(ctx, s.Key(name))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.WarnContext(ctx, "Storage read failed, using default", "key", s.Key(name), "error", err)
		}
		return fallback
	}
	if raw == "" {
		return fallback
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.WarnContext(ctx, "Malformed stored value, using default", "key", s.Key(name), "error", err)
		return fallback
	}

	return value
}

// loadForWrite is Load for a read-modify-write. A missing key or malformed
// data yield the zero value so the following save heals them; any other
// backend error is returned and the caller must not write.
func loadForWrite[T any](ctx context.Context, s *Store, name string) (T, error) {
	var zero T
	raw, err := s.backend.Get(ctx, s.Key(name))
	if errors.Is(err, ErrKeyNotFound) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("storage load %s: %w", name, err)
	}
	if raw == "" {
		return zero, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.WarnContext(ctx, "Malformed stored value, overwriting", "key", s.Key(name), "error", err)
		return zero, nil
	}
	return value, nil
}

// Save encodes value and replaces whatever was stored under name.
func (s *Store) Save(ctx context.Context, name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage marshal error: %w", err)
	}

	if err := s.backend.Set(ctx, s.Key(name), string(data)); err != nil {
		return fmt.Errorf("storage save %s: %w", name, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.backend.Delete(ctx, s.Key(name)); err != nil {
		return fmt.Errorf("storage remove %s: %w", name, err)
	}
	return nil
}

// Locked runs fn while holding the store-wide write lock.
func (s *Store) Locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *Store) Close() error {
	return s.backend.Close()
}

type profileKey struct{}

// WithProfile tags ctx with the id of the client profile (one browser).
func WithProfile(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileKey{}, profileID)
}

func ProfileFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(profileKey{}).(string)
	return id, ok && id != ""
}
