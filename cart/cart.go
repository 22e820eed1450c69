// Package cart holds the shopping cart state and the rules that keep it
// consistent with the last-known stock ceilings supplied by the catalog.
//
// All state transitions are pure functions over State; persistence is
// layered on top by Manager. Quantities are clamped against stock rather
// than rejected: an operation that cannot be satisfied is a no-op, never
// an error.
package cart

// Key identifies one distinct purchasable unit. A cart holds at most one
// line item per key. VariantID and SizeID are zero when the product has no
// such option.
type Key struct {
	ProductID int `json:"product_id"`
	VariantID int `json:"variant_id"`
	SizeID    int `json:"size_id"`
}

// LineItem is one product+variant+size selection with a quantity.
// Stock is the ceiling the catalog reported when the item was added or
// last synced; the cart trusts it and never queries inventory itself.
type LineItem struct {
	Key
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"`
}

// State is the cart aggregate. TotalItems counts distinct line items (not
// summed quantities) and TotalPrice sums price*quantity; both are derived
// from Items after every transition and never maintained incrementally.
type State struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// Outcome reports what an add did. Callers that only care about the
// resulting state may ignore it.
type Outcome int

const (
	// Rejected means the operation was a no-op: the item was already at
	// its stock ceiling, or the clamped quantity resolved to zero.
	Rejected Outcome = iota
	// Added means a new line item was appended.
	Added
	// Updated means an existing line item's quantity grew.
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	default:
		return "rejected"
	}
}

// Empty returns a cart with no items.
func Empty() State {
	return recompute(nil)
}

// recompute derives both totals wholesale from items. Every transition
// funnels through here so the totals can never drift from Items.
func recompute(items []LineItem) State {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return State{
		Items:      items,
		TotalItems: len(items),
		TotalPrice: total,
	}
}

func indexOf(items []LineItem, key Key) int {
	for i, it := range items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

// add merges candidate into the cart. An existing line item with the same
// key grows by candidate.Quantity clamped to candidate.Stock; a new item
// is appended with its quantity clamped the same way. The candidate's
// price, metadata and stock overwrite the stored ones on merge, so a
// re-add refreshes a stale snapshot.
func add(s State, candidate LineItem) (State, Outcome) {
	items := append([]LineItem(nil), s.Items...)

	if i := indexOf(items, candidate.Key); i >= 0 {
		newQty := items[i].Quantity + candidate.Quantity
		if newQty > candidate.Stock {
			newQty = candidate.Stock
		}
		if newQty <= items[i].Quantity {
			// Already at the ceiling; repeated adds stay no-ops.
			return s, Rejected
		}
		candidate.Quantity = newQty
		items[i] = candidate
		return recompute(items), Updated
	}

	qty := candidate.Quantity
	if qty > candidate.Stock {
		qty = candidate.Stock
	}
	if qty <= 0 {
		return s, Rejected
	}
	candidate.Quantity = qty
	return recompute(append(items, candidate)), Added
}

// setQuantity replaces the quantity of the matching line item, clamped to
// its stock ceiling. A requested quantity of zero or less removes the item
// outright; a zero-quantity line item never exists in the cart.
func setQuantity(s State, key Key, quantity int) State {
	i := indexOf(s.Items, key)
	if i < 0 {
		return s
	}
	if quantity > s.Items[i].Stock {
		quantity = s.Items[i].Stock
	}
	if quantity <= 0 {
		return remove(s, key)
	}
	items := append([]LineItem(nil), s.Items...)
	items[i].Quantity = quantity
	return recompute(items)
}

// remove drops the matching line item, if present.
func remove(s State, key Key) State {
	return removeAll(s, []Key{key})
}

// removeAll drops every line item matching any of the given keys. An empty
// key list is a no-op, not a clear-all.
func removeAll(s State, keys []Key) State {
	if len(keys) == 0 {
		return s
	}
	drop := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	kept := make([]LineItem, 0, len(s.Items))
	for _, it := range s.Items {
		if _, gone := drop[it.Key]; !gone {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(s.Items) {
		return s
	}
	return recompute(kept)
}

// replaceItems overwrites the cart with a snapshot the caller has already
// validated, e.g. when resynchronizing after a reload. No stock clamping
// is applied here.
func replaceItems(items []LineItem) State {
	return recompute(append([]LineItem(nil), items...))
}
