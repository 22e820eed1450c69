package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/config"
	"marketplace/models"
)

// productColumns matches the scan order used by every product query.
// category_id, image_url and cloudinary_id are nullable and coalesced to
// zero values.
const productColumns = `id, seller_id, COALESCE(category_id, 0), name, slug, description, price, stock,
	COALESCE(image_url, ''), COALESCE(cloudinary_id, ''), is_active, created_at, updated_at`

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, is_active, created_at FROM categories WHERE is_active = true ORDER BY name`

	rows, err := config.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// ProductFilter narrows the public product listing.
type ProductFilter struct {
	Search     string
	CategoryID int
	SellerID   int
	MinPrice   float64
	MaxPrice   float64
	Sort       string
	Page       int
	Limit      int
}

func (f ProductFilter) orderBy() string {
	switch f.Sort {
	case "name_asc":
		return "name ASC"
	case "name_desc":
		return "name DESC"
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	default:
		return "created_at DESC"
	}
}

func (r *ProductRepository) FindAll(ctx context.Context, filter ProductFilter) ([]models.Product, int, error) {
	conditions := []string{"is_active = true"}
	args := []interface{}{}
	idx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	if filter.CategoryID > 0 {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", idx))
		args = append(args, filter.CategoryID)
		idx++
	}
	if filter.SellerID > 0 {
		conditions = append(conditions, fmt.Sprintf("seller_id = $%d", idx))
		args = append(args, filter.SellerID)
		idx++
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", idx))
		args = append(args, filter.MinPrice)
		idx++
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", idx))
		args = append(args, filter.MaxPrice)
		idx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products WHERE " + where
	if err := config.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, filter.orderBy(), idx, idx+1)
	args = append(args, filter.Limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
			&p.Price, &p.Stock, &p.ImageURL, &p.CloudinaryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.Stock, &p.ImageURL, &p.CloudinaryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1 AND is_active = true`

	var p models.Product
	err := config.DB.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.Stock, &p.ImageURL, &p.CloudinaryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (seller_id, category_id, name, slug, description, price, stock,
		                      image_url, cloudinary_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, $10, $11)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		product.SellerID, product.CategoryID, product.Name, product.Slug, product.Description,
		product.Price, product.Stock, product.ImageURL, product.CloudinaryID, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET category_id = $1, name = $2, slug = $3, description = $4,
	          price = $5, stock = $6, image_url = $7, cloudinary_id = $8, is_active = $9,
	          updated_at = $10 WHERE id = $11`
	_, err := config.DB.Exec(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.Price, product.Stock, product.ImageURL, product.CloudinaryID,
		product.IsActive, time.Now(), product.ID,
	)
	return err
}

// Delete deactivates the product; order history keeps referencing it.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `UPDATE products SET is_active = false, updated_at = $1 WHERE id = $2`,
		time.Now(), id)
	return err
}

func (r *ProductRepository) FindVariant(ctx context.Context, productID, variantID int) (*models.ProductVariant, error) {
	query := `SELECT id, product_id, name, COALESCE(price_adjustment, 0), stock
	          FROM product_variants WHERE id = $1 AND product_id = $2`

	var v models.ProductVariant
	err := config.DB.QueryRow(ctx, query, variantID, productID).Scan(
		&v.ID, &v.ProductID, &v.Name, &v.PriceAdjustment, &v.Stock)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ProductRepository) FindSize(ctx context.Context, productID, sizeID int) (*models.ProductSize, error) {
	query := `SELECT id, product_id, name, COALESCE(price_adjustment, 0), stock
	          FROM product_sizes WHERE id = $1 AND product_id = $2`

	var s models.ProductSize
	err := config.DB.QueryRow(ctx, query, sizeID, productID).Scan(
		&s.ID, &s.ProductID, &s.Name, &s.PriceAdjustment, &s.Stock)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ProductRepository) FindVariants(ctx context.Context, productID int) ([]models.ProductVariant, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, product_id, name, COALESCE(price_adjustment, 0), stock
		 FROM product_variants WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []models.ProductVariant{}
	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceAdjustment, &v.Stock); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *ProductRepository) FindSizes(ctx context.Context, productID int) ([]models.ProductSize, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, product_id, name, COALESCE(price_adjustment, 0), stock
		 FROM product_sizes WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sizes := []models.ProductSize{}
	for rows.Next() {
		var s models.ProductSize
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Name, &s.PriceAdjustment, &s.Stock); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}
