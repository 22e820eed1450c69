package models

import "time"

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID            int         `json:"id"`
	OrderNumber   string      `json:"order_number"`
	UserID        int         `json:"user_id"`
	Status        string      `json:"status"`
	Subtotal      float64     `json:"subtotal"`
	Discount      float64     `json:"discount"`
	Total         float64     `json:"total"`
	CouponCode    *string     `json:"coupon_code,omitempty"`
	PaymentMethod string      `json:"payment_method"`
	Address       string      `json:"address"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	VariantID   *int    `json:"variant_id,omitempty"`
	SizeID      *int    `json:"size_id,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
