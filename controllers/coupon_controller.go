package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/models"
	"marketplace/services"
)

type CouponController struct {
	couponService *services.CouponService
}

func NewCouponController() *CouponController {
	return &CouponController{couponService: services.NewCouponService()}
}

// ValidateCoupon godoc
// @Summary Validate coupon
// @Description Check a coupon code against a subtotal and return the discount it yields
// @Tags Coupons
// @Produce json
// @Param code query string true "Coupon code"
// @Param subtotal query number true "Order subtotal"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /coupons/validate [get]
func (ctrl *CouponController) ValidateCoupon(c *gin.Context) {
	code := c.Query("code")
	subtotal, _ := strconv.ParseFloat(c.Query("subtotal"), 64)

	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Coupon code required"})
		return
	}

	coupon, discount, err := ctrl.couponService.Validate(c.Request.Context(), code, subtotal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coupon is valid",
		"data": gin.H{
			"code":     coupon.Code,
			"discount": discount,
		},
	})
}

// GetAllCoupons godoc
// @Summary List coupons
// @Description Paginated listing of all coupons (Admin)
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.Response
// @Router /admin/coupons [get]
func (ctrl *CouponController) GetAllCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	coupons, total, err := ctrl.couponService.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get coupons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coupons retrieved",
		"data":    gin.H{"coupons": coupons, "total": total},
	})
}

// CreateCoupon godoc
// @Summary Create coupon
// @Description Create a new coupon (Admin)
// @Tags Admin - Coupons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateCouponRequest true "Coupon"
// @Success 201 {object} models.Response
// @Router /admin/coupons [post]
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	var req models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	coupon, err := ctrl.couponService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Coupon created", "data": coupon})
}

// DeactivateCoupon godoc
// @Summary Deactivate coupon
// @Description Deactivate a coupon so it can no longer be applied (Admin)
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} models.Response
// @Router /admin/coupons/{id} [delete]
func (ctrl *CouponController) DeactivateCoupon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid coupon ID"})
		return
	}

	if err := ctrl.couponService.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to deactivate coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deactivated"})
}
