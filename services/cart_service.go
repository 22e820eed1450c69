package services

import (
	"context"
	"errors"
	"fmt"

	"marketplace/cart"
	"marketplace/models"
	"marketplace/repositories"
)

// ErrCartUnavailable is returned when no cart store is configured
// (Redis down or not set up).
var ErrCartUnavailable = errors.New("cart storage unavailable")

// CartService bridges the HTTP layer to the cart state manager. It is the
// cart's catalog/stock source: every add resolves the product, variant and
// size to compute the effective unit price and stock ceiling before the
// line item reaches the manager. The manager itself never touches the
// database.
type CartService struct {
	store       cart.Store
	productRepo *repositories.ProductRepository
}

func NewCartService(store cart.Store) *CartService {
	return &CartService{
		store:       store,
		productRepo: repositories.NewProductRepository(),
	}
}

func (s *CartService) manager(ctx context.Context, owner string) (*cart.Manager, error) {
	if s.store == nil {
		return nil, ErrCartUnavailable
	}
	return cart.LoadManager(ctx, owner, s.store), nil
}

// Get returns the owner's current cart snapshot.
func (s *CartService) Get(ctx context.Context, owner string) (cart.Snapshot, error) {
	m, err := s.manager(ctx, owner)
	if err != nil {
		return cart.Snapshot{}, err
	}
	return m.Snapshot(), nil
}

// Add resolves the requested product selection against the catalog and
// merges it into the cart. The returned outcome distinguishes a fresh
// line item, a quantity bump and a no-op at the stock ceiling.
func (s *CartService) Add(ctx context.Context, owner string, req models.AddCartItemRequest) (cart.Snapshot, cart.Outcome, error) {
	m, err := s.manager(ctx, owner)
	if err != nil {
		return cart.Snapshot{}, cart.Rejected, err
	}

	candidate, err := s.resolveLineItem(ctx, req)
	if err != nil {
		return cart.Snapshot{}, cart.Rejected, err
	}

	outcome := m.AddItem(ctx, candidate)
	return m.Snapshot(), outcome, nil
}

// resolveLineItem builds a fully-populated line item from the catalog.
// The effective price is the base price plus variant/size adjustments and
// the stock ceiling is the narrowest stock among the selected options.
func (s *CartService) resolveLineItem(ctx context.Context, req models.AddCartItemRequest) (cart.LineItem, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return cart.LineItem{}, fmt.Errorf("product not found")
	}
	if !product.IsActive {
		return cart.LineItem{}, fmt.Errorf("product is no longer available")
	}

	price := product.Price
	stock := product.Stock

	if req.VariantID > 0 {
		variant, err := s.productRepo.FindVariant(ctx, req.ProductID, req.VariantID)
		if err != nil {
			return cart.LineItem{}, fmt.Errorf("variant not found")
		}
		price += variant.PriceAdjustment
		if variant.Stock < stock {
			stock = variant.Stock
		}
	}

	if req.SizeID > 0 {
		size, err := s.productRepo.FindSize(ctx, req.ProductID, req.SizeID)
		if err != nil {
			return cart.LineItem{}, fmt.Errorf("size not found")
		}
		price += size.PriceAdjustment
		if size.Stock < stock {
			stock = size.Stock
		}
	}

	return cart.LineItem{
		Key: cart.Key{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			SizeID:    req.SizeID,
		},
		Name:     product.Name,
		Slug:     product.Slug,
		ImageURL: product.ImageURL,
		Price:    price,
		Quantity: req.Quantity,
		Stock:    stock,
	}, nil
}

// UpdateQuantity sets the quantity of one line item, clamped against the
// stock ceiling recorded in the cart. Zero removes the item.
func (s *CartService) UpdateQuantity(ctx context.Context, owner string, req models.UpdateCartItemRequest) (cart.Snapshot, error) {
	m, err := s.manager(ctx, owner)
	if err != nil {
		return cart.Snapshot{}, err
	}
	key := cart.Key{ProductID: req.ProductID, VariantID: req.VariantID, SizeID: req.SizeID}
	m.UpdateQuantity(ctx, key, req.Quantity)
	return m.Snapshot(), nil
}

// Remove drops the line items matching the given keys.
func (s *CartService) Remove(ctx context.Context, owner string, keys []models.CartKeyRequest) (cart.Snapshot, error) {
	m, err := s.manager(ctx, owner)
	if err != nil {
		return cart.Snapshot{}, err
	}
	cartKeys := make([]cart.Key, 0, len(keys))
	for _, k := range keys {
		cartKeys = append(cartKeys, cart.Key{ProductID: k.ProductID, VariantID: k.VariantID, SizeID: k.SizeID})
	}
	m.RemoveItems(ctx, cartKeys)
	return m.Snapshot(), nil
}

// Clear empties the cart and removes its persisted snapshot.
func (s *CartService) Clear(ctx context.Context, owner string) error {
	m, err := s.manager(ctx, owner)
	if err != nil {
		return err
	}
	m.Clear(ctx)
	return nil
}

// Replace overwrites the cart from a client snapshot. The caller is
// trusted to have validated the items; no stock clamping happens here.
func (s *CartService) Replace(ctx context.Context, owner string, items []models.ReplaceCartItem) (cart.Snapshot, error) {
	m, err := s.manager(ctx, owner)
	if err != nil {
		return cart.Snapshot{}, err
	}
	lineItems := make([]cart.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, cart.LineItem{
			Key:      cart.Key{ProductID: it.ProductID, VariantID: it.VariantID, SizeID: it.SizeID},
			Name:     it.Name,
			Slug:     it.Slug,
			ImageURL: it.ImageURL,
			Price:    it.Price,
			Quantity: it.Quantity,
			Stock:    it.Stock,
		})
	}
	m.Replace(ctx, lineItems)
	return m.Snapshot(), nil
}
