package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/models"
	"marketplace/services"
)

type ReviewController struct {
	reviewService *services.ReviewService
}

func NewReviewController() *ReviewController {
	return &ReviewController{reviewService: services.NewReviewService()}
}

// GetProductReviews godoc
// @Summary List product reviews
// @Description Paginated reviews for a product with its average rating
// @Tags Reviews
// @Produce json
// @Param id path int true "Product ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.Response
// @Router /products/{id}/reviews [get]
func (ctrl *ReviewController) GetProductReviews(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	reviews, total, avg, err := ctrl.reviewService.ListByProduct(c.Request.Context(), productID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reviews retrieved",
		"data": gin.H{
			"reviews":        reviews,
			"average_rating": avg,
			"total":          total,
		},
	})
}

// CreateReview godoc
// @Summary Create review
// @Description Review a product; requires a delivered order containing it
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /products/{id}/reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	review, err := ctrl.reviewService.Create(c.Request.Context(), c.GetInt("user_id"), productID, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrReviewNotAllowed) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Review created", "data": review})
}

// UpdateReview godoc
// @Summary Update review
// @Description Update the authenticated user's review of a product
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.CreateReviewRequest true "Review"
// @Success 200 {object} models.Response
// @Router /products/{id}/reviews [patch]
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	review, err := ctrl.reviewService.Update(c.Request.Context(), c.GetInt("user_id"), productID, req)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review updated", "data": review})
}

// DeleteReview godoc
// @Summary Delete review
// @Description Delete the authenticated user's review of a product
// @Tags Reviews
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /products/{id}/reviews [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if err := ctrl.reviewService.Delete(c.Request.Context(), c.GetInt("user_id"), productID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
