package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"payroll/internal/storage"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	CollectionAccounts      = "accounts"
	CollectionDisbursements = "disbursements"
)

// RecordStore persists named collections as whole JSON documents on a
// storage backend. Each collection has its own lock; every load-mutate-save
// cycle on a collection runs while holding it.
type RecordStore struct {
	backend storage.Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRecordStore wraps a storage backend.
func NewRecordStore(backend storage.Backend) *RecordStore {
	return &RecordStore{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Backend returns the underlying storage backend.
func (s *RecordStore) Backend() storage.Backend {
	return s.backend
}

func (s *RecordStore) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *RecordStore) key(name string) (string, error) {
	key := storage.DocumentKey(name)
	if key == "" {
		return "", fmt.Errorf("invalid collection name %q", name)
	}
	return key, nil
}

// Collection is a typed view of one named collection in a RecordStore.
// Collections with the same name on the same store share a lock.
type Collection[T any] struct {
	store *RecordStore
	name  string
	mu    *sync.Mutex
}

// NewCollection binds a collection name to a record type.
func NewCollection[T any](store *RecordStore, name string) *Collection[T] {
	return &Collection[T]{
		store: store,
		name:  name,
		mu:    store.lockFor(name),
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns every record in insertion order. A missing, unreadable or
// corrupt document yields an empty slice; the failure is logged, not returned.
func (c *Collection[T]) Load(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

// Save overwrites the whole document with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(ctx, records)
}

// Update runs a full load-mutate-save cycle under the collection lock. When
// fn returns an error nothing is written.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := fn(c.loadLocked(ctx))
	if err != nil {
		return err
	}
	return c.saveLocked(ctx, records)
}

// Init writes the records returned by seed when the backing document does not
// exist yet. It reports whether the document was created. Unlike Load, read
// errors other than "not found" are returned so a broken backend never gets
// overwritten with seed data.
func (c *Collection[T]) Init(ctx context.Context, seed func() ([]T, error)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, err := c.store.key(c.name)
	if err != nil {
		return false, err
	}
	_, err = c.store.backend.Read(ctx, key)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, storage.ErrNotExist):
	default:
		return false, fmt.Errorf("check collection %s: %w", c.name, err)
	}

	records, err := seed()
	if err != nil {
		return false, err
	}
	if err := c.saveLocked(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Collection[T]) loadLocked(ctx context.Context) []T {
	records := make([]T, 0)

	key, err := c.store.key(c.name)
	if err != nil {
		logrus.WithError(err).Warn("record store: invalid collection")
		return records
	}

	data, err := c.store.backend.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			logrus.WithError(err).WithField("collection", c.name).Warn("record store: read failed, treating collection as empty")
		}
		return records
	}
	if len(data) == 0 {
		return records
	}

	if err := json.Unmarshal(data, &records); err != nil {
		logrus.WithError(err).WithField("collection", c.name).Warn("record store: corrupt document, treating collection as empty")
		return make([]T, 0)
	}
	if records == nil {
		// a literal "null" document
		records = make([]T, 0)
	}
	return records
}

func (c *Collection[T]) saveLocked(ctx context.Context, records []T) error {
	key, err := c.store.key(c.name)
	if err != nil {
		return err
	}
	if records == nil {
		records = make([]T, 0)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.name, err)
	}
	if err := c.store.backend.Write(ctx, key, data); err != nil {
		return fmt.Errorf("save collection %s: %w", c.name, err)
	}
	return nil
}
