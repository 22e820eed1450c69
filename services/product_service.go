package services

import (
	"context"
	"errors"
	"math"

	"marketplace/models"
	"marketplace/repositories"
	"marketplace/utils"
)

var ErrNotProductOwner = errors.New("product does not belong to seller")

type ProductService struct {
	productRepo *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{
		productRepo: repositories.NewProductRepository(),
	}
}

func (s *ProductService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.productRepo.GetAllCategories(ctx)
}

func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter) (*models.PaginationResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return &models.PaginationResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Meta: models.MetaData{
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int) (*models.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.productRepo.FindBySlug(ctx, slug)
}

func (s *ProductService) GetOptions(ctx context.Context, productID int) ([]models.ProductVariant, []models.ProductSize, error) {
	variants, err := s.productRepo.FindVariants(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	sizes, err := s.productRepo.FindSizes(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return variants, sizes, nil
}

func (s *ProductService) Create(ctx context.Context, sellerID int, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		SellerID:    sellerID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies partial changes. Sellers may only touch their own
// products; admins pass sellerID 0 to bypass the ownership check.
func (s *ProductService) Update(ctx context.Context, id, sellerID int, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if sellerID > 0 && product.SellerID != sellerID {
		return nil, ErrNotProductOwner
	}

	applyProductChanges(product, req)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// applyProductChanges copies only the fields the request actually carries.
// Stock and IsActive are pointers so a request that omits them leaves the
// stored values alone; zero is a valid stock level.
func applyProductChanges(product *models.Product, req models.UpdateProductRequest) {
	if req.Name != "" {
		product.Name = req.Name
		product.Slug = utils.Slugify(req.Name)
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.CategoryID > 0 {
		product.CategoryID = req.CategoryID
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Stock != nil && *req.Stock >= 0 {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
}

func (s *ProductService) SetImage(ctx context.Context, id, sellerID int, imageURL, cloudinaryID string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if sellerID > 0 && product.SellerID != sellerID {
		return nil, ErrNotProductOwner
	}

	product.ImageURL = imageURL
	product.CloudinaryID = cloudinaryID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id, sellerID int) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("product not found")
	}
	if sellerID > 0 && product.SellerID != sellerID {
		return ErrNotProductOwner
	}
	return s.productRepo.Delete(ctx, id)
}
