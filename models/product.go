package models

import "time"

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID           int       `json:"id"`
	SellerID     int       `json:"seller_id"`
	CategoryID   int       `json:"category_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	ImageURL     string    `json:"image_url"`
	CloudinaryID string    `json:"cloudinary_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProductVariant struct {
	ID              int     `json:"id"`
	ProductID       int     `json:"product_id"`
	Name            string  `json:"name"`
	PriceAdjustment float64 `json:"price_adjustment"`
	Stock           int     `json:"stock"`
}

type ProductSize struct {
	ID              int     `json:"id"`
	ProductID       int     `json:"product_id"`
	Name            string  `json:"name"`
	PriceAdjustment float64 `json:"price_adjustment"`
	Stock           int     `json:"stock"`
}
