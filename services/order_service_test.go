package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace/cart"
	"marketplace/models"
	"marketplace/repositories"
)

type stubOrderRepo struct {
	orders       map[int]*models.Order
	sellerOrders map[int]int
	updated      map[int]string
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:       map[int]*models.Order{},
		sellerOrders: map[int]int{},
		updated:      map[int]string{},
	}
}

func (r *stubOrderRepo) FindAll(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int, error) {
	return nil, 0, nil
}

func (r *stubOrderRepo) FindByID(ctx context.Context, id int) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *order
	return &copied, nil
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, orderID int, status string) error {
	r.updated[orderID] = status
	return nil
}

func (r *stubOrderRepo) HasSellerProduct(ctx context.Context, orderID, sellerID int) (bool, error) {
	return r.sellerOrders[orderID] == sellerID, nil
}

type stubCartStore struct {
	snaps map[string]cart.Snapshot
}

func (s *stubCartStore) Load(ctx context.Context, owner string) (*cart.Snapshot, error) {
	snap, ok := s.snaps[owner]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return &snap, nil
}

func (s *stubCartStore) Save(ctx context.Context, owner string, snap cart.Snapshot) error {
	s.snaps[owner] = snap
	return nil
}

func (s *stubCartStore) Delete(ctx context.Context, owner string) error {
	delete(s.snaps, owner)
	return nil
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	repo := newStubOrderRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: models.OrderPending}
	svc := &OrderService{orderRepo: repo}

	order, err := svc.UpdateStatus(context.Background(), 1, models.OrderProcessing)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, order.Status)
	assert.Equal(t, models.OrderProcessing, repo.updated[1])
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	repo := newStubOrderRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: models.OrderPending}
	svc := &OrderService{orderRepo: repo}

	_, err := svc.UpdateStatus(context.Background(), 1, models.OrderDelivered)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.updated)
}

func TestUpdateStatusRejectsCancelAfterShipping(t *testing.T) {
	repo := newStubOrderRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: models.OrderShipped}
	svc := &OrderService{orderRepo: repo}

	_, err := svc.UpdateStatus(context.Background(), 1, models.OrderCancelled)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSellerCannotUpdateForeignOrder(t *testing.T) {
	repo := newStubOrderRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: models.OrderPending}
	repo.sellerOrders[1] = 7
	svc := &OrderService{orderRepo: repo}

	_, err := svc.UpdateStatusForSeller(context.Background(), 1, 9, models.OrderProcessing)

	assert.ErrorIs(t, err, ErrOrderAccessDenied)
	assert.Empty(t, repo.updated)
}

func TestSellerUpdatesOwnOrder(t *testing.T) {
	repo := newStubOrderRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: models.OrderPending}
	repo.sellerOrders[1] = 7
	svc := &OrderService{orderRepo: repo}

	order, err := svc.UpdateStatusForSeller(context.Background(), 1, 7, models.OrderProcessing)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, order.Status)
	assert.Equal(t, models.OrderProcessing, repo.updated[1])
}

func TestCheckoutRejectsMissingCart(t *testing.T) {
	svc := &OrderService{store: &stubCartStore{snaps: map[string]cart.Snapshot{}}}

	_, err := svc.Checkout(context.Background(), 5, models.CheckoutRequest{Address: "Jl. Merdeka 1", PaymentMethod: "cod"})

	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutRejectsEmptySnapshot(t *testing.T) {
	store := &stubCartStore{snaps: map[string]cart.Snapshot{
		"5": {Version: cart.SnapshotVersion},
	}}
	svc := &OrderService{store: store}

	_, err := svc.Checkout(context.Background(), 5, models.CheckoutRequest{Address: "Jl. Merdeka 1", PaymentMethod: "cod"})

	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutRejectsUnknownSnapshotVersion(t *testing.T) {
	line := cart.LineItem{Key: cart.Key{ProductID: 1}, Name: "Rattan Chair", Price: 150, Quantity: 2, Stock: 5}
	store := &stubCartStore{snaps: map[string]cart.Snapshot{
		"5": {Version: cart.SnapshotVersion + 1, Items: []cart.LineItem{line}, TotalItems: 1, TotalPrice: 300},
	}}
	svc := &OrderService{store: store}

	_, err := svc.Checkout(context.Background(), 5, models.CheckoutRequest{Address: "Jl. Merdeka 1", PaymentMethod: "cod"})

	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutSubtotalUsesResolvedPrices(t *testing.T) {
	lines := []checkoutLine{
		{LineItem: cart.LineItem{Key: cart.Key{ProductID: 1}, Price: 100, Quantity: 2}, UnitPrice: 120},
		{LineItem: cart.LineItem{Key: cart.Key{ProductID: 2}, Price: 50, Quantity: 1}, UnitPrice: 45},
	}

	// 120*2 + 45*1, not the snapshot prices 100*2 + 50*1.
	assert.InDelta(t, 285, checkoutSubtotal(lines), 1e-9)
}

func TestCheckoutSubtotalEmpty(t *testing.T) {
	assert.Zero(t, checkoutSubtotal(nil))
}
