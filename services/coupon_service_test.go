package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace/models"
)

func TestDiscountPercent(t *testing.T) {
	coupon := &models.Coupon{DiscountType: models.DiscountPercent, Value: 10}

	assert.InDelta(t, 25, Discount(coupon, 250), 1e-9)
}

func TestDiscountFixed(t *testing.T) {
	coupon := &models.Coupon{DiscountType: models.DiscountFixed, Value: 50}

	assert.InDelta(t, 50, Discount(coupon, 250), 1e-9)
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	coupon := &models.Coupon{DiscountType: models.DiscountFixed, Value: 500}

	assert.InDelta(t, 250, Discount(coupon, 250), 1e-9)
}

func TestDiscountUnknownTypeIsZero(t *testing.T) {
	coupon := &models.Coupon{DiscountType: "mystery", Value: 500}

	assert.Zero(t, Discount(coupon, 250))
}
