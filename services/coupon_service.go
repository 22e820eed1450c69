package services

import (
	"context"
	"errors"
	"time"

	"marketplace/models"
	"marketplace/repositories"
)

var (
	ErrCouponInvalid     = errors.New("coupon is invalid or expired")
	ErrCouponMinSubtotal = errors.New("order subtotal below coupon minimum")
)

type CouponService struct {
	couponRepo *repositories.CouponRepository
}

func NewCouponService() *CouponService {
	return &CouponService{
		couponRepo: repositories.NewCouponRepository(),
	}
}

// Discount computes the amount a coupon takes off a subtotal. The result
// never exceeds the subtotal itself.
func Discount(coupon *models.Coupon, subtotal float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case models.DiscountPercent:
		discount = subtotal * coupon.Value / 100
	case models.DiscountFixed:
		discount = coupon.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// Validate checks a coupon against a subtotal and returns the coupon and
// the discount it yields.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal float64) (*models.Coupon, float64, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, 0, ErrCouponInvalid
	}

	if !coupon.IsActive {
		return nil, 0, ErrCouponInvalid
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, 0, ErrCouponInvalid
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, 0, ErrCouponInvalid
	}
	if subtotal < coupon.MinSubtotal {
		return nil, 0, ErrCouponMinSubtotal
	}

	return coupon, Discount(coupon, subtotal), nil
}

func (s *CouponService) List(ctx context.Context, page, limit int) ([]models.Coupon, int, error) {
	return s.couponRepo.FindAll(ctx, page, limit)
}

func (s *CouponService) Create(ctx context.Context, req models.CreateCouponRequest) (*models.Coupon, error) {
	coupon := &models.Coupon{
		Code:         req.Code,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MinSubtotal:  req.MinSubtotal,
		UsageLimit:   req.UsageLimit,
		IsActive:     true,
	}

	if req.DiscountType == models.DiscountPercent && req.Value > 100 {
		return nil, errors.New("percent discount cannot exceed 100")
	}

	if req.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, errors.New("expires_at must be RFC3339")
		}
		coupon.ExpiresAt = &expires
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) Deactivate(ctx context.Context, id int) error {
	return s.couponRepo.Deactivate(ctx, id)
}
