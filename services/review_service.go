package services

import (
	"context"
	"errors"

	"marketplace/models"
	"marketplace/repositories"
)

var (
	ErrReviewNotAllowed = errors.New("reviews require a delivered order containing the product")
	ErrReviewExists     = errors.New("product already reviewed")
	ErrNotReviewAuthor  = errors.New("review does not belong to user")
)

type ReviewService struct {
	reviewRepo *repositories.ReviewRepository
	orderRepo  *repositories.OrderRepository
}

func NewReviewService() *ReviewService {
	return &ReviewService{
		reviewRepo: repositories.NewReviewRepository(),
		orderRepo:  repositories.NewOrderRepository(),
	}
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID, page, limit int) ([]models.Review, int, float64, error) {
	reviews, total, err := s.reviewRepo.FindByProduct(ctx, productID, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, total, avg, nil
}

func (s *ReviewService) Create(ctx context.Context, userID, productID int, req models.CreateReviewRequest) (*models.Review, error) {
	delivered, err := s.orderRepo.HasDeliveredProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !delivered {
		return nil, ErrReviewNotAllowed
	}

	if existing, _ := s.reviewRepo.FindByUserAndProduct(ctx, userID, productID); existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, productID int, req models.CreateReviewRequest) (*models.Review, error) {
	review, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, ErrNotReviewAuthor
	}

	review.Rating = req.Rating
	review.Comment = req.Comment

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, productID int) error {
	review, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return ErrNotReviewAuthor
	}
	return s.reviewRepo.Delete(ctx, review.ID)
}
