package cart

import (
	"context"
	"log"
	"sync"
)

// Manager owns the authoritative in-memory cart for one owner and writes a
// snapshot through its Store after every mutation. Persistence is
// fire-and-forget: a failed write is logged and the in-memory state stands.
//
// The mutex guards the struct against concurrent use inside one process.
// Two sessions holding managers for the same owner still race at the store
// with last-write-wins semantics; see DESIGN.md.
type Manager struct {
	mu    sync.Mutex
	owner string
	store Store
	state State
}

// NewManager returns an empty cart for owner backed by store.
func NewManager(owner string, store Store) *Manager {
	return &Manager{owner: owner, store: store, state: Empty()}
}

// LoadManager restores the owner's persisted cart. A missing snapshot
// yields an empty cart; any other load failure is logged and also yields
// an empty cart rather than blocking the caller.
func LoadManager(ctx context.Context, owner string, store Store) *Manager {
	m := NewManager(owner, store)
	snap, err := store.Load(ctx, owner)
	if err != nil && err != ErrNotFound {
		log.Printf("cart: load for %s failed: %v", owner, err)
	}
	m.state = restore(snap)
	return m
}

// AddItem merges candidate into the cart, clamping against its stock
// ceiling, and reports whether the item was added, updated or rejected.
func (m *Manager) AddItem(ctx context.Context, candidate LineItem) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, outcome := add(m.state, candidate)
	if outcome == Rejected {
		return outcome
	}
	m.state = next
	m.persist(ctx)
	return outcome
}

// UpdateQuantity sets the quantity of the matching item, clamped to stock.
// Zero or negative removes the item.
func (m *Manager) UpdateQuantity(ctx context.Context, key Key, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = setQuantity(m.state, key, quantity)
	m.persist(ctx)
}

// RemoveItem drops the matching line item.
func (m *Manager) RemoveItem(ctx context.Context, key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = remove(m.state, key)
	m.persist(ctx)
}

// RemoveItems drops every line item matching any of the keys. An empty
// list leaves the cart untouched.
func (m *Manager) RemoveItems(ctx context.Context, keys []Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = removeAll(m.state, keys)
	m.persist(ctx)
}

// Clear empties the cart and deletes the persisted snapshot.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Empty()
	if err := m.store.Delete(ctx, m.owner); err != nil {
		log.Printf("cart: delete for %s failed: %v", m.owner, err)
	}
}

// Replace overwrites the cart with an externally validated snapshot.
func (m *Manager) Replace(ctx context.Context, items []LineItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = replaceItems(items)
	m.persist(ctx)
}

// Items returns a copy of the line items in insertion order.
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LineItem(nil), m.state.Items...)
}

// TotalItems returns the count of distinct line items.
func (m *Manager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.TotalItems
}

// TotalPrice returns the sum of price*quantity over all line items.
func (m *Manager) TotalPrice() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.TotalPrice
}

// Snapshot returns the persistable form of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		Items:      append([]LineItem(nil), m.state.Items...),
		TotalItems: m.state.TotalItems,
		TotalPrice: m.state.TotalPrice,
	}
}

func (m *Manager) persist(ctx context.Context) {
	if err := m.store.Save(ctx, m.owner, m.snapshotLocked()); err != nil {
		log.Printf("cart: save for %s failed: %v", m.owner, err)
	}
}
