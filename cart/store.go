package cart

import (
	"context"
	"errors"
)

// SnapshotVersion tags the persisted envelope so the layout can evolve
// without misreading old payloads.
const SnapshotVersion = 1

// ErrNotFound is returned by Store.Load when no snapshot exists for the
// owner.
var ErrNotFound = errors.New("cart: snapshot not found")

// Snapshot is the persisted form of a cart. Totals are stored for display
// convenience but are rederived from Items when the snapshot is restored.
type Snapshot struct {
	Version    int        `json:"version"`
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// Store persists cart snapshots keyed by owner (a user ID or a guest
// session ID). Save must be called after every mutation and Delete on
// clear, so a cleared cart can never be resurrected by a stale snapshot.
type Store interface {
	Load(ctx context.Context, owner string) (*Snapshot, error)
	Save(ctx context.Context, owner string, snap Snapshot) error
	Delete(ctx context.Context, owner string) error
}

// restore rebuilds a State from a persisted snapshot. Unknown versions
// fall back to an empty cart rather than guessing at the layout.
func restore(snap *Snapshot) State {
	if snap == nil || snap.Version != SnapshotVersion {
		return Empty()
	}
	return replaceItems(snap.Items)
}
