package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"marketplace/config"
	"marketplace/models"
	"marketplace/repositories"
	"marketplace/services"
)

type ProductController struct {
	productService *services.ProductService
	reviewService  *services.ReviewService
	cloudinary     *models.CloudinaryService
}

func NewProductController(cloudinary *models.CloudinaryService) *ProductController {
	return &ProductController{
		productService: services.NewProductService(),
		reviewService:  services.NewReviewService(),
		cloudinary:     cloudinary,
	}
}

func productCacheKey(c *gin.Context) string {
	return "products_list_" + c.Request.URL.RawQuery
}

func invalidateProductCache() {
	if config.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := config.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
}

// GetCategories godoc
// @Summary Get all categories
// @Description Get list of active categories
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	categories, err := ctrl.productService.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// GetProducts godoc
// @Summary Browse products
// @Description Paginated product listing with search, category, price range and sorting
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search by product name"
// @Param category query int false "Filter by category ID"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param sort query string false "Sort order" Enums(name_asc, name_desc, price_asc, price_desc, newest)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	cacheKey := productCacheKey(c)
	ctx := c.Request.Context()

	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	categoryID, _ := strconv.Atoi(c.Query("category"))
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	filter := repositories.ProductFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		CategoryID: categoryID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Sort:       c.Query("sort"),
		Page:       page,
		Limit:      limit,
	}

	response, err := ctrl.productService.List(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get products"})
		return
	}

	if config.RedisClient != nil {
		if jsonData, err := json.Marshal(response); err == nil {
			config.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetProduct godoc
// @Summary Get product detail
// @Description Get a product by ID with its variants, sizes and average rating
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.productService.GetByID(ctx, id)
	if err != nil || !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	variants, sizes, err := ctrl.productService.GetOptions(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get product options"})
		return
	}

	_, _, avgRating, err := ctrl.reviewService.ListByProduct(ctx, id, 1, 1)
	if err != nil {
		avgRating = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product retrieved",
		"data": gin.H{
			"product":  product,
			"variants": variants,
			"sizes":    sizes,
			"rating":   avgRating,
		},
	})
}

// GetProductBySlug godoc
// @Summary Get product by slug
// @Description Get an active product by its URL slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/slug/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := ctrl.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

// sellerScope returns the seller ID to enforce ownership with, or 0 for
// admins who may touch any product.
func sellerScope(c *gin.Context) int {
	if c.GetString("user_role") == models.RoleAdmin {
		return 0
	}
	return c.GetInt("user_id")
}

// CreateProduct godoc
// @Summary Create product
// @Description Create a new product owned by the authenticated seller
// @Tags Seller - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Router /seller/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), c.GetInt("user_id"), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created", "data": product})
}

// UpdateProduct godoc
// @Summary Update product
// @Description Update a product; sellers may only update their own
// @Tags Seller - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Changes"
// @Success 200 {object} models.Response
// @Router /seller/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, sellerScope(c), req)
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotProductOwner {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated", "data": product})
}

// UploadProductImage godoc
// @Summary Upload product image
// @Description Upload a product image to Cloudinary
// @Tags Seller - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Router /seller/products/{id}/image [post]
func (ctrl *ProductController) UploadProductImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if ctrl.cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Image uploads unavailable"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image required"})
		return
	}

	if err := ctrl.cloudinary.ValidateImageFile(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read image"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	url, publicID, err := ctrl.cloudinary.UploadImage(ctx, file, fileHeader.Filename, "products")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Upload failed: %v", err)})
		return
	}

	product, err := ctrl.productService.SetImage(ctx, id, sellerScope(c), url, publicID)
	if err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotProductOwner {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image uploaded", "data": product})
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Deactivate a product; sellers may only delete their own
// @Tags Seller - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /seller/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id, sellerScope(c)); err != nil {
		status := http.StatusBadRequest
		if err == services.ErrNotProductOwner {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// GetSellerProducts godoc
// @Summary List seller products
// @Description Paginated listing of the authenticated seller's products
// @Tags Seller - Products
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /seller/products [get]
func (ctrl *ProductController) GetSellerProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := repositories.ProductFilter{
		SellerID: c.GetInt("user_id"),
		Page:     page,
		Limit:    limit,
	}

	response, err := ctrl.productService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, response)
}
