package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/config"
	"marketplace/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// OrderFilter narrows order listings. SellerID restricts the result to
// orders containing at least one of the seller's products.
type OrderFilter struct {
	UserID    int
	SellerID  int
	Status    string
	StartDate string
	EndDate   string
	Search    string
	Page      int
	Limit     int
}

func (r *OrderRepository) FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filter.UserID > 0 {
		conditions = append(conditions, fmt.Sprintf("o.user_id = $%d", idx))
		args = append(args, filter.UserID)
		idx++
	}
	if filter.SellerID > 0 {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM order_items oi JOIN products p ON oi.product_id = p.id
			 WHERE oi.order_id = o.id AND p.seller_id = $%d)`, idx))
		args = append(args, filter.SellerID)
		idx++
	}
	if filter.Status != "" && filter.Status != "All" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("DATE(o.created_at) >= $%d", idx))
		args = append(args, filter.StartDate)
		idx++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("DATE(o.created_at) <= $%d", idx))
		args = append(args, filter.EndDate)
		idx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("o.order_number ILIKE $%d", idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM orders o WHERE " + where
	if err := config.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(
		`SELECT o.id, o.order_number, o.user_id, o.status, o.subtotal, o.discount, o.total,
		 o.coupon_code, o.payment_method, o.address, o.created_at, o.updated_at
		 FROM orders o WHERE %s ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`,
		where, idx, idx+1)
	args = append(args, filter.Limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.Subtotal, &o.Discount,
			&o.Total, &o.CouponCode, &o.PaymentMethod, &o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) FindByID(ctx context.Context, id int) (*models.Order, error) {
	query := `SELECT id, order_number, user_id, status, subtotal, discount, total,
	          coupon_code, payment_method, address, created_at, updated_at
	          FROM orders WHERE id = $1`

	var o models.Order
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.Subtotal, &o.Discount,
		&o.Total, &o.CouponCode, &o.PaymentMethod, &o.Address, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) findItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.product_id, oi.variant_id, oi.size_id,
	          COALESCE(p.name, ''), oi.quantity, oi.unit_price
	          FROM order_items oi
	          LEFT JOIN products p ON oi.product_id = p.id
	          WHERE oi.order_id = $1 ORDER BY oi.id`

	rows, err := config.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.SizeID,
			&it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int, status string) error {
	tag, err := config.DB.Exec(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

// HasSellerProduct reports whether the order contains at least one of the
// seller's products. Sellers may only manage orders they fulfil.
func (r *OrderRepository) HasSellerProduct(ctx context.Context, orderID, sellerID int) (bool, error) {
	var count int
	err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM order_items oi
		 JOIN products p ON oi.product_id = p.id
		 WHERE oi.order_id = $1 AND p.seller_id = $2`,
		orderID, sellerID).Scan(&count)
	return count > 0, err
}

// HasDeliveredProduct reports whether the user has a delivered order
// containing the product. Reviews are gated on it.
func (r *OrderRepository) HasDeliveredProduct(ctx context.Context, userID, productID int) (bool, error) {
	var count int
	err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders o
		 JOIN order_items oi ON oi.order_id = o.id
		 WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = $3`,
		userID, productID, models.OrderDelivered).Scan(&count)
	return count > 0, err
}
