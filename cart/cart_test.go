package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(productID, variantID, sizeID int, price float64, qty, stock int) LineItem {
	return LineItem{
		Key:      Key{ProductID: productID, VariantID: variantID, SizeID: sizeID},
		Name:     "test product",
		Slug:     "test-product",
		Price:    price,
		Quantity: qty,
		Stock:    stock,
	}
}

// checkInvariants asserts the properties every operation must preserve:
// positive quantities bounded by stock, and totals derived from items.
func checkInvariants(t *testing.T, s State) {
	t.Helper()

	assert.Equal(t, len(s.Items), s.TotalItems)

	want := 0.0
	for _, it := range s.Items {
		assert.Greater(t, it.Quantity, 0)
		assert.LessOrEqual(t, it.Quantity, it.Stock)
		want += it.Price * float64(it.Quantity)
	}
	assert.InDelta(t, want, s.TotalPrice, 1e-9)
}

func TestAddNewItem(t *testing.T) {
	s, outcome := add(Empty(), item(1, 0, 0, 25000, 2, 10))

	assert.Equal(t, Added, outcome)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.InDelta(t, 50000, s.TotalPrice, 1e-9)
	checkInvariants(t, s)
}

func TestAddClampsToStock(t *testing.T) {
	s, outcome := add(Empty(), item(1, 0, 0, 100, 10, 3))

	assert.Equal(t, Added, outcome)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 3, s.Items[0].Quantity)
	checkInvariants(t, s)
}

func TestAddZeroStockIsNoop(t *testing.T) {
	s, outcome := add(Empty(), item(1, 0, 0, 100, 2, 0))

	assert.Equal(t, Rejected, outcome)
	assert.Empty(t, s.Items)
	assert.Zero(t, s.TotalItems)
}

func TestAddMergesSameKey(t *testing.T) {
	s, _ := add(Empty(), item(1, 2, 3, 100, 2, 5))
	before := s.TotalPrice

	s, outcome := add(s, item(1, 2, 3, 100, 2, 5))

	assert.Equal(t, Updated, outcome)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 4, s.Items[0].Quantity)
	assert.InDelta(t, before+100*2, s.TotalPrice, 1e-9)
	checkInvariants(t, s)
}

func TestAddMergeClampsAtCeiling(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 4, 5))
	before := s.TotalPrice

	// Only one unit fits under the ceiling of 5.
	s, outcome := add(s, item(1, 0, 0, 100, 3, 5))

	assert.Equal(t, Updated, outcome)
	assert.Equal(t, 5, s.Items[0].Quantity)
	assert.InDelta(t, before+100, s.TotalPrice, 1e-9)
	checkInvariants(t, s)
}

func TestAddIdempotentAtCapacity(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 5, 5))

	for i := 0; i < 3; i++ {
		next, outcome := add(s, item(1, 0, 0, 100, 2, 5))
		assert.Equal(t, Rejected, outcome)
		assert.Equal(t, s, next)
	}
}

func TestAddDistinctKeysStayDistinct(t *testing.T) {
	s, _ := add(Empty(), item(1, 1, 0, 100, 1, 5))
	s, _ = add(s, item(1, 2, 0, 150, 1, 5))
	s, _ = add(s, item(2, 1, 0, 200, 1, 5))

	assert.Equal(t, 3, s.TotalItems)
	checkInvariants(t, s)
}

func TestAddRefreshesMetadataOnMerge(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 1, 5))

	fresh := item(1, 0, 0, 120, 1, 8)
	fresh.Name = "renamed"
	s, _ = add(s, fresh)

	assert.Equal(t, "renamed", s.Items[0].Name)
	assert.Equal(t, 8, s.Items[0].Stock)
	assert.InDelta(t, 120, s.Items[0].Price, 1e-9)
	checkInvariants(t, s)
}

func TestSetQuantityClampsToStock(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 2, 5))

	s = setQuantity(s, Key{ProductID: 1}, 99)

	assert.Equal(t, 5, s.Items[0].Quantity)
	checkInvariants(t, s)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 2, 5))
	s, _ = add(s, item(2, 0, 0, 50, 1, 5))

	s = setQuantity(s, Key{ProductID: 1}, 0)

	assert.Equal(t, 1, s.TotalItems)
	assert.Equal(t, -1, indexOf(s.Items, Key{ProductID: 1}))
	checkInvariants(t, s)
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 2, 5))

	s = setQuantity(s, Key{ProductID: 1}, -3)

	assert.Empty(t, s.Items)
	checkInvariants(t, s)
}

func TestSetQuantityMissingKeyIsNoop(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 2, 5))

	next := setQuantity(s, Key{ProductID: 42}, 3)

	assert.Equal(t, s, next)
}

func TestRemoveItem(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 2, 5))
	s, _ = add(s, item(2, 0, 0, 50, 3, 5))

	s = remove(s, Key{ProductID: 1})

	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].ProductID)
	assert.InDelta(t, 150, s.TotalPrice, 1e-9)
	checkInvariants(t, s)
}

func TestRemoveAllBulk(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 1, 5))
	s, _ = add(s, item(2, 0, 0, 200, 1, 5))
	s, _ = add(s, item(3, 0, 0, 300, 1, 5))

	s = removeAll(s, []Key{{ProductID: 1}, {ProductID: 3}})

	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].ProductID)
	assert.InDelta(t, 200, s.TotalPrice, 1e-9)
	checkInvariants(t, s)
}

func TestRemoveAllEmptyKeysIsNoop(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 1, 5))
	s, _ = add(s, item(2, 0, 0, 200, 1, 5))

	next := removeAll(s, nil)

	assert.Equal(t, s, next)
}

func TestReplaceRecomputesTotals(t *testing.T) {
	s, _ := add(Empty(), item(1, 0, 0, 100, 1, 5))

	s = replaceItems([]LineItem{
		item(7, 0, 0, 10, 2, 9),
		item(8, 0, 0, 20, 3, 9),
	})

	assert.Equal(t, 2, s.TotalItems)
	assert.InDelta(t, 10*2+20*3, s.TotalPrice, 1e-9)
	checkInvariants(t, s)
}

func TestInsertionOrderPreserved(t *testing.T) {
	s, _ := add(Empty(), item(3, 0, 0, 1, 1, 5))
	s, _ = add(s, item(1, 0, 0, 1, 1, 5))
	s, _ = add(s, item(2, 0, 0, 1, 1, 5))
	s, _ = add(s, item(1, 0, 0, 1, 1, 5)) // merge must not reorder

	ids := []int{}
	for _, it := range s.Items {
		ids = append(ids, it.ProductID)
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestInvariantsUnderOperationSequence(t *testing.T) {
	s := Empty()
	checkInvariants(t, s)

	ops := []func(State) State{
		func(s State) State { s, _ = add(s, item(1, 0, 0, 25.5, 3, 4)); return s },
		func(s State) State { s, _ = add(s, item(2, 1, 0, 10, 99, 2)); return s },
		func(s State) State { s, _ = add(s, item(1, 0, 0, 25.5, 3, 4)); return s },
		func(s State) State { return setQuantity(s, Key{ProductID: 2, VariantID: 1}, 1) },
		func(s State) State { s, _ = add(s, item(3, 0, 2, 7.25, 1, 1)); return s },
		func(s State) State { return setQuantity(s, Key{ProductID: 1}, 0) },
		func(s State) State { return removeAll(s, []Key{{ProductID: 3, SizeID: 2}}) },
		func(s State) State {
			return replaceItems([]LineItem{item(9, 0, 0, 5, 2, 3)})
		},
	}

	for _, op := range ops {
		s = op(s)
		checkInvariants(t, s)
	}
}
