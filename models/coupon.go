package models

import "time"

const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

type Coupon struct {
	ID           int        `json:"id"`
	Code         string     `json:"code"`
	DiscountType string     `json:"discount_type"`
	Value        float64    `json:"value"`
	MinSubtotal  float64    `json:"min_subtotal"`
	UsageLimit   int        `json:"usage_limit"`
	UsedCount    int        `json:"used_count"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}
