package model

import (
	"context"
	"errors"
	"fmt"
	"payroll/internal/storage"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type memBackend struct {
	mu      sync.Mutex
	docs    map[string][]byte
	readErr error
	writes  int
}

func newMemBackend() *memBackend {
	return &memBackend{docs: make(map[string][]byte)}
}

func (m *memBackend) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.docs[key]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (m *memBackend) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

func TestCollectionLoadMissingIsEmpty(t *testing.T) {
	col := NewCollection[item](NewRecordStore(newMemBackend()), "items")

	records := col.Load(context.Background())
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCollectionRoundTripKeepsOrder(t *testing.T) {
	backend := newMemBackend()
	col := NewCollection[item](NewRecordStore(backend), "items")
	ctx := context.Background()

	in := []item{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	require.NoError(t, col.Save(ctx, in))
	assert.Equal(t, in, col.Load(ctx))

	first := backend.docs["items.json"]
	require.NoError(t, col.Save(ctx, col.Load(ctx)))
	assert.Equal(t, string(first), string(backend.docs["items.json"]))
}

func TestCollectionSaveNilWritesEmptyArray(t *testing.T) {
	backend := newMemBackend()
	col := NewCollection[item](NewRecordStore(backend), "items")

	require.NoError(t, col.Save(context.Background(), nil))
	assert.Equal(t, "[]", string(backend.docs["items.json"]))
}

func TestCollectionCorruptDocumentIsEmpty(t *testing.T) {
	for name, body := range map[string]string{
		"garbage": "{not json",
		"object":  `{"id":1}`,
		"null":    "null",
		"empty":   "",
	} {
		t.Run(name, func(t *testing.T) {
			backend := newMemBackend()
			backend.docs["items.json"] = []byte(body)
			col := NewCollection[item](NewRecordStore(backend), "items")

			records := col.Load(context.Background())
			require.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestCollectionReadErrorIsSwallowed(t *testing.T) {
	backend := newMemBackend()
	backend.readErr = errors.New("disk on fire")
	col := NewCollection[item](NewRecordStore(backend), "items")

	assert.Empty(t, col.Load(context.Background()))
}

func TestCollectionUpdateErrorSkipsWrite(t *testing.T) {
	backend := newMemBackend()
	col := NewCollection[item](NewRecordStore(backend), "items")
	boom := errors.New("rejected")

	err := col.Update(context.Background(), func(records []item) ([]item, error) {
		return append(records, item{ID: 1}), boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, backend.writes)
}

func TestCollectionConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store := NewRecordStore(newMemBackend())
	ctx := context.Background()

	const workers = 40
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// a fresh view per goroutine still shares the collection lock
			col := NewCollection[item](store, "items")
			err := col.Update(ctx, func(records []item) ([]item, error) {
				return append(records, item{ID: int64(len(records) + 1), Name: fmt.Sprintf("w%d", n)}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	records := NewCollection[item](store, "items").Load(ctx)
	require.Len(t, records, workers)
	for i, rec := range records {
		assert.Equal(t, int64(i+1), rec.ID)
	}
}

func TestCollectionInit(t *testing.T) {
	backend := newMemBackend()
	col := NewCollection[item](NewRecordStore(backend), "items")
	ctx := context.Background()
	seed := func() ([]item, error) { return []item{{ID: 1, Name: "seed"}}, nil }

	created, err := col.Init(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, col.Save(ctx, []item{{ID: 9}}))
	created, err = col.Init(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []item{{ID: 9}}, col.Load(ctx))
}

func TestCollectionInitDoesNotOverwriteOnReadError(t *testing.T) {
	backend := newMemBackend()
	backend.readErr = errors.New("timeout")
	col := NewCollection[item](NewRecordStore(backend), "items")

	created, err := col.Init(context.Background(), func() ([]item, error) { return []item{{ID: 1}}, nil })
	require.Error(t, err)
	assert.False(t, created)
	assert.Zero(t, backend.writes)
}

func TestCollectionRejectsUnusableName(t *testing.T) {
	col := NewCollection[item](NewRecordStore(newMemBackend()), "../")
	assert.Error(t, col.Save(context.Background(), []item{{ID: 1}}))
}

func TestCollectionWithLocalStorage(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	col := NewCollection[item](NewRecordStore(local), CollectionDisbursements)
	ctx := context.Background()

	require.NoError(t, col.Update(ctx, func(records []item) ([]item, error) {
		return append(records, item{ID: 1, Name: "first"}), nil
	}))
	assert.Equal(t, []item{{ID: 1, Name: "first"}}, col.Load(ctx))
}
