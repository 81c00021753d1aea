package storage

import (
	"context"
	"errors"
)

// Record is anything kept in a Collection.
type Record interface {
	GetID() string
}

// errNoChange aborts a Mutate without writing.
var errNoChange = errors.New("no change")

// Collection is a named, ordered list of records stored as one JSON array.
type Collection[T Record] struct {
	store *Store
	name  string
}

func NewCollection[T Record](store *Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// All returns every record in insertion order, or an empty slice when the
// collection is unset or unreadable.
func (c *Collection[T]) All(ctx context.Context) []T {
	items := Load(ctx, c.store, c.name, []T{})
	if items == nil {
		return []T{}
	}
	return items
}

// Filter returns the records for which keep is true. A nil keep returns all.
func (c *Collection[T]) Filter(ctx context.Context, keep func(T) bool) []T {
	items := c.All(ctx)
	if keep == nil {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the first record matching match.
func (c *Collection[T]) Find(ctx context.Context, match func(T) bool) (T, bool) {
	for _, item := range c.All(ctx) {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool) {
	return c.Find(ctx, func(item T) bool { return item.GetID() == id })
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	return c.store.Locked(func() error {
		return c.store.Save(ctx, c.name, items)
	})
}

// Mutate loads the collection, hands it to fn and saves the result, all under
// the store lock so concurrent writers cannot lose each other's updates. When
// the backend read fails or fn returns an error nothing is written.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.store.Locked(func() error {
		current, err := loadForWrite[[]T](ctx, c.store, c.name)
		if err != nil {
			return err
		}
		if current == nil {
			current = []T{}
		}

		items, err := fn(current)
		if err != nil {
			if errors.Is(err, errNoChange) {
				return nil
			}
			return err
		}
		return c.store.Save(ctx, c.name, items)
	})
}

// Append adds rec at the end of the collection.
func (c *Collection[T]) Append(ctx context.Context, rec T) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		return append(items, rec), nil
	})
}

// Upsert runs update on the record whose id equals id. When id is empty or
// unknown, create builds a new record which is appended. The boolean reports
// whether a record was created. Errors from create or update leave the
// collection untouched.
func (c *Collection[T]) Upsert(ctx context.Context, id string, create func() (T, error), update func(*T) error) (T, bool, error) {
	var (
		result  T
		created bool
	)

	err := c.Mutate(ctx, func(items []T) ([]T, error) {
		if id != "" {
			for i := range items {
				if items[i].GetID() != id {
					continue
				}
				if err := update(&items[i]); err != nil {
					return nil, err
				}
				result = items[i]
				return items, nil
			}
		}

		rec, err := create()
		if err != nil {
			return nil, err
		}
		result, created = rec, true
		return append(items, rec), nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	return result, created, nil
}

// Delete removes the record with the given id and reports whether one existed.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := c.Mutate(ctx, func(items []T) ([]T, error) {
		out := items[:0]
		for _, item := range items {
			if item.GetID() == id {
				removed = true
				continue
			}
			out = append(out, item)
		}
		if !removed {
			return nil, errNoChange
		}
		return out, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
