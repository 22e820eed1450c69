package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"marketplace/cart"
	"marketplace/config"
	"marketplace/models"
	"marketplace/repositories"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderAccessDenied = errors.New("order does not belong to user")
)

// statusTransitions lists the allowed next statuses for each order status.
var statusTransitions = map[string][]string{
	models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderDelivered},
}

// orderRepository is the subset of repositories.OrderRepository the
// service depends on.
type orderRepository interface {
	FindAll(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int, error)
	FindByID(ctx context.Context, id int) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) error
	HasSellerProduct(ctx context.Context, orderID, sellerID int) (bool, error)
}

type OrderService struct {
	orderRepo orderRepository
	userRepo  *repositories.UserRepository
	coupons   *CouponService
	store     cart.Store
	email     *models.EmailService
}

func NewOrderService(store cart.Store, email *models.EmailService) *OrderService {
	return &OrderService{
		orderRepo: repositories.NewOrderRepository(),
		userRepo:  repositories.NewUserRepository(),
		coupons:   NewCouponService(),
		store:     store,
		email:     email,
	}
}

// checkoutLine pairs a cart line with the unit price resolved inside the
// checkout transaction. The snapshot's Price field is whatever the catalog
// said at add-to-cart time; the order must record what was actually charged.
type checkoutLine struct {
	cart.LineItem
	UnitPrice float64
}

// checkoutSubtotal sums the resolved prices so the stored subtotal always
// matches sum(unit_price * quantity) over the order items.
func checkoutSubtotal(lines []checkoutLine) float64 {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	return subtotal
}

// Checkout turns the user's persisted cart into an order. Stock is
// re-validated against the catalog inside a transaction with row locks;
// the cart's stock ceilings are only last-known snapshots and must not be
// trusted at purchase time. On success the persisted cart is deleted and
// a confirmation email goes out best-effort.
func (s *OrderService) Checkout(ctx context.Context, userID int, req models.CheckoutRequest) (*models.Order, error) {
	if s.store == nil {
		return nil, ErrCartUnavailable
	}

	owner := fmt.Sprintf("%d", userID)
	snap, err := s.store.Load(ctx, owner)
	if err != nil {
		if err == cart.ErrNotFound {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if snap.Version != cart.SnapshotVersion || len(snap.Items) == 0 {
		return nil, ErrCartEmpty
	}

	address := req.Address
	if address == "" {
		profile, err := s.userRepo.GetProfile(ctx, userID)
		if err != nil || profile.Address == "" {
			return nil, errors.New("delivery address required")
		}
		address = profile.Address
	}

	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lines := make([]checkoutLine, 0, len(snap.Items))
	for _, item := range snap.Items {
		var name string
		var price float64
		var stock int
		err := tx.QueryRow(ctx,
			`SELECT name, price, stock FROM products WHERE id = $1 AND is_active = true FOR UPDATE`,
			item.ProductID).Scan(&name, &price, &stock)
		if err != nil {
			return nil, fmt.Errorf("product %d no longer available", item.ProductID)
		}

		if item.VariantID > 0 {
			var adj float64
			var vstock int
			err := tx.QueryRow(ctx,
				`SELECT COALESCE(price_adjustment, 0), stock FROM product_variants
				 WHERE id = $1 AND product_id = $2 FOR UPDATE`,
				item.VariantID, item.ProductID).Scan(&adj, &vstock)
			if err != nil {
				return nil, fmt.Errorf("variant for product %d no longer available", item.ProductID)
			}
			price += adj
			if vstock < stock {
				stock = vstock
			}
		}

		if item.SizeID > 0 {
			var adj float64
			var sstock int
			err := tx.QueryRow(ctx,
				`SELECT COALESCE(price_adjustment, 0), stock FROM product_sizes
				 WHERE id = $1 AND product_id = $2 FOR UPDATE`,
				item.SizeID, item.ProductID).Scan(&adj, &sstock)
			if err != nil {
				return nil, fmt.Errorf("size for product %d no longer available", item.ProductID)
			}
			price += adj
			if sstock < stock {
				stock = sstock
			}
		}

		if stock < item.Quantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, name)
		}
		lines = append(lines, checkoutLine{LineItem: item, UnitPrice: price})
	}

	subtotal := checkoutSubtotal(lines)

	discount := 0.0
	var couponCode *string
	if req.CouponCode != "" {
		coupon, d, err := s.coupons.Validate(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = d
		couponCode = &coupon.Code

		if _, err := tx.Exec(ctx,
			`UPDATE coupons SET used_count = used_count + 1 WHERE id = $1`, coupon.ID); err != nil {
			return nil, fmt.Errorf("failed to record coupon usage: %w", err)
		}
	}

	total := subtotal - discount
	orderNumber := fmt.Sprintf("ORD-%d", time.Now().Unix())
	now := time.Now()

	var orderID int
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, status, subtotal, discount, total,
		                     coupon_code, payment_method, address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		orderNumber, userID, models.OrderPending, subtotal, discount, total,
		couponCode, req.PaymentMethod, address, now, now).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, line := range lines {
		item := line.LineItem
		var variantID, sizeID interface{}
		if item.VariantID > 0 {
			variantID = item.VariantID
		}
		if item.SizeID > 0 {
			sizeID = item.SizeID
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, variant_id, size_id, quantity, unit_price, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			orderID, item.ProductID, variantID, sizeID, item.Quantity, line.UnitPrice, now)
		if err != nil {
			return nil, fmt.Errorf("failed to create order items: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3`,
			item.Quantity, now, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to update stock: %w", err)
		}

		if item.VariantID > 0 {
			if _, err = tx.Exec(ctx,
				`UPDATE product_variants SET stock = stock - $1 WHERE id = $2`,
				item.Quantity, item.VariantID); err != nil {
				return nil, fmt.Errorf("failed to update variant stock: %w", err)
			}
		}
		if item.SizeID > 0 {
			if _, err = tx.Exec(ctx,
				`UPDATE product_sizes SET stock = stock - $1 WHERE id = $2`,
				item.Quantity, item.SizeID); err != nil {
				return nil, fmt.Errorf("failed to update size stock: %w", err)
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	if err := s.store.Delete(ctx, owner); err != nil {
		log.Printf("failed to clear cart after checkout for user %d: %v", userID, err)
	}

	if s.email != nil {
		if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
			if err := s.email.SendOrderConfirmationEmail(user.Email, orderNumber, total); err != nil {
				log.Printf("order confirmation email failed for %s: %v", orderNumber, err)
			}
		}
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *OrderService) List(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int, error) {
	return s.orderRepo.FindAll(ctx, filter)
}

// GetForUser returns the order only if it belongs to the user.
func (s *OrderService) GetForUser(ctx context.Context, orderID, userID int) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int) (*models.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

// UpdateStatus enforces the pending -> processing -> shipped -> delivered
// lifecycle, with cancellation allowed before shipping.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int, status string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range statusTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// UpdateStatusForSeller updates the status only when the order contains at
// least one of the seller's products.
func (s *OrderService) UpdateStatusForSeller(ctx context.Context, orderID, sellerID int, status string) (*models.Order, error) {
	owns, err := s.orderRepo.HasSellerProduct(ctx, orderID, sellerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrOrderAccessDenied
	}
	return s.UpdateStatus(ctx, orderID, status)
}
