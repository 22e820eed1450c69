package repositories

import (
	"context"
	"strings"
	"time"

	"marketplace/config"
	"marketplace/models"
)

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	query := `SELECT id, code, discount_type, value, min_subtotal, usage_limit, used_count,
	          expires_at, is_active, created_at
	          FROM coupons WHERE code = $1`

	var c models.Coupon
	err := config.DB.QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(code))).Scan(
		&c.ID, &c.Code, &c.DiscountType, &c.Value, &c.MinSubtotal, &c.UsageLimit,
		&c.UsedCount, &c.ExpiresAt, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) FindAll(ctx context.Context, page, limit int) ([]models.Coupon, int, error) {
	var total int
	if err := config.DB.QueryRow(ctx, `SELECT COUNT(*) FROM coupons`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := config.DB.Query(ctx,
		`SELECT id, code, discount_type, value, min_subtotal, usage_limit, used_count,
		 expires_at, is_active, created_at
		 FROM coupons ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	coupons := []models.Coupon{}
	for rows.Next() {
		var c models.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountType, &c.Value, &c.MinSubtotal,
			&c.UsageLimit, &c.UsedCount, &c.ExpiresAt, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		coupons = append(coupons, c)
	}
	return coupons, total, rows.Err()
}

func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	query := `
		INSERT INTO coupons (code, discount_type, value, min_subtotal, usage_limit,
		                     used_count, expires_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, true, $7)
		RETURNING id, created_at
	`
	return config.DB.QueryRow(ctx, query,
		strings.ToUpper(strings.TrimSpace(coupon.Code)), coupon.DiscountType, coupon.Value,
		coupon.MinSubtotal, coupon.UsageLimit, coupon.ExpiresAt, time.Now(),
	).Scan(&coupon.ID, &coupon.CreatedAt)
}

func (r *CouponRepository) Deactivate(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `UPDATE coupons SET is_active = false WHERE id = $1`, id)
	return err
}
