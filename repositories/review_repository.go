package repositories

import (
	"context"
	"time"

	"marketplace/config"
	"marketplace/models"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) FindByProduct(ctx context.Context, productID, page, limit int) ([]models.Review, int, error) {
	var total int
	if err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := `
		SELECT r.id, r.product_id, r.user_id, COALESCE(p.full_name, ''),
		       r.rating, r.comment, r.created_at, r.updated_at
		FROM reviews r
		LEFT JOIN user_profiles p ON r.user_id = p.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := config.DB.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

func (r *ReviewRepository) AverageRating(ctx context.Context, productID int) (float64, error) {
	var avg float64
	err := config.DB.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1`, productID).Scan(&avg)
	return avg, err
}

func (r *ReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID int) (*models.Review, error) {
	query := `SELECT id, product_id, user_id, rating, comment, created_at, updated_at
	          FROM reviews WHERE user_id = $1 AND product_id = $2`

	var rv models.Review
	err := config.DB.QueryRow(ctx, query, userID, productID).Scan(
		&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (product_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		review.ProductID, review.UserID, review.Rating, review.Comment, now, now,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE reviews SET rating = $1, comment = $2, updated_at = $3 WHERE id = $4`,
		review.Rating, review.Comment, time.Now(), review.ID)
	return err
}

func (r *ReviewRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}
