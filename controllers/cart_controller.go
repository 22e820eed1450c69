package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/cart"
	"marketplace/models"
	"marketplace/services"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

func (ctrl *CartController) owner(c *gin.Context) string {
	return c.GetString("cart_owner")
}

func (ctrl *CartController) fail(c *gin.Context, err error) {
	if err == services.ErrCartUnavailable {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Cart storage unavailable"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}

// GetCart godoc
// @Summary Get cart
// @Description Get the current cart with derived totals
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Guest cart session ID"
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	snap, err := ctrl.cartService.Get(c.Request.Context(), ctrl.owner(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart retrieved", "data": snap})
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a product selection to the cart; quantity is clamped to available stock
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Item to add"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	snap, outcome, err := ctrl.cartService.Add(c.Request.Context(), ctrl.owner(c), req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	message := "Item added to cart"
	switch outcome {
	case cart.Updated:
		message = "Cart item quantity updated"
	case cart.Rejected:
		message = "Item already at stock limit"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    gin.H{"outcome": outcome.String(), "cart": snap},
	})
}

// UpdateItem godoc
// @Summary Update cart item quantity
// @Description Set the quantity of a cart item; zero removes it, values above stock are clamped
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.UpdateCartItemRequest true "Quantity update"
// @Success 200 {object} models.Response
// @Router /cart/items [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	snap, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), ctrl.owner(c), req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "data": snap})
}

// RemoveItems godoc
// @Summary Remove cart items
// @Description Remove one or more items from the cart by key
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.RemoveCartItemsRequest true "Keys to remove"
// @Success 200 {object} models.Response
// @Router /cart/items [delete]
func (ctrl *CartController) RemoveItems(c *gin.Context) {
	var req models.RemoveCartItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	snap, err := ctrl.cartService.Remove(c.Request.Context(), ctrl.owner(c), req.Keys)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Items removed", "data": snap})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Empty the cart and delete its persisted snapshot
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cartService.Clear(c.Request.Context(), ctrl.owner(c)); err != nil {
		ctrl.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

// ReplaceCart godoc
// @Summary Replace cart
// @Description Overwrite the cart with a client-provided snapshot (used for resynchronization)
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.ReplaceCartRequest true "New cart contents"
// @Success 200 {object} models.Response
// @Router /cart [put]
func (ctrl *CartController) ReplaceCart(c *gin.Context) {
	var req models.ReplaceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	snap, err := ctrl.cartService.Replace(c.Request.Context(), ctrl.owner(c), req.Items)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart replaced", "data": snap})
}
