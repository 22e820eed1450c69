package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store standing in for Redis.
type memStore struct {
	snaps map[string]Snapshot
	saves int
}

func newMemStore() *memStore {
	return &memStore{snaps: map[string]Snapshot{}}
}

func (s *memStore) Load(_ context.Context, owner string) (*Snapshot, error) {
	snap, ok := s.snaps[owner]
	if !ok {
		return nil, ErrNotFound
	}
	return &snap, nil
}

func (s *memStore) Save(_ context.Context, owner string, snap Snapshot) error {
	s.saves++
	s.snaps[owner] = snap
	return nil
}

func (s *memStore) Delete(_ context.Context, owner string) error {
	delete(s.snaps, owner)
	return nil
}

func TestManagerPersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager("user-1", store)

	m.AddItem(ctx, item(1, 0, 0, 100, 2, 5))
	assert.Equal(t, 1, store.saves)

	m.UpdateQuantity(ctx, Key{ProductID: 1}, 4)
	assert.Equal(t, 2, store.saves)

	snap := store.snaps["user-1"]
	assert.Equal(t, SnapshotVersion, snap.Version)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 4, snap.Items[0].Quantity)
	assert.InDelta(t, 400, snap.TotalPrice, 1e-9)
}

func TestManagerRejectedAddDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager("user-1", store)

	m.AddItem(ctx, item(1, 0, 0, 100, 5, 5))
	saves := store.saves

	outcome := m.AddItem(ctx, item(1, 0, 0, 100, 1, 5))

	assert.Equal(t, Rejected, outcome)
	assert.Equal(t, saves, store.saves)
}

func TestManagerReloadRestoresState(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	m := NewManager("user-1", store)
	m.AddItem(ctx, item(1, 0, 0, 100, 2, 5))
	m.AddItem(ctx, item(2, 0, 0, 50, 1, 5))

	reloaded := LoadManager(ctx, "user-1", store)

	assert.Equal(t, 2, reloaded.TotalItems())
	assert.InDelta(t, 250, reloaded.TotalPrice(), 1e-9)
	assert.Equal(t, m.Items(), reloaded.Items())
}

func TestManagerClearDeletesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	m := NewManager("user-1", store)
	m.AddItem(ctx, item(1, 0, 0, 100, 2, 5))
	require.Contains(t, store.snaps, "user-1")

	m.Clear(ctx)

	assert.NotContains(t, store.snaps, "user-1")
	assert.Zero(t, m.TotalItems())

	// Simulated reload must see an empty cart, not the pre-clear snapshot.
	reloaded := LoadManager(ctx, "user-1", store)
	assert.Empty(t, reloaded.Items())
	assert.Zero(t, reloaded.TotalPrice())
}

func TestManagerUnknownSnapshotVersionLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.snaps["user-1"] = Snapshot{
		Version: 99,
		Items:   []LineItem{item(1, 0, 0, 100, 2, 5)},
	}

	m := LoadManager(ctx, "user-1", store)

	assert.Empty(t, m.Items())
}

func TestManagerReplace(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager("user-1", store)
	m.AddItem(ctx, item(1, 0, 0, 100, 2, 5))

	m.Replace(ctx, []LineItem{
		item(7, 0, 0, 10, 2, 9),
		item(8, 0, 0, 20, 1, 9),
	})

	assert.Equal(t, 2, m.TotalItems())
	assert.InDelta(t, 40, m.TotalPrice(), 1e-9)
	assert.Equal(t, 2, store.snaps["user-1"].TotalItems)
}

func TestManagerRemoveItems(t *testing.T) {
	ctx := context.Background()
	m := NewManager("user-1", newMemStore())
	m.AddItem(ctx, item(1, 0, 0, 10, 1, 5))
	m.AddItem(ctx, item(2, 0, 0, 20, 1, 5))
	m.AddItem(ctx, item(3, 0, 0, 30, 1, 5))

	m.RemoveItems(ctx, []Key{{ProductID: 1}, {ProductID: 3}})

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ProductID)
}
