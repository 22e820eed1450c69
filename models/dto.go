package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" binding:"omitempty"`
	Role     string `json:"role" binding:"omitempty,oneof=customer seller"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role" binding:"omitempty,oneof=customer seller admin"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" form:"name" binding:"required"`
	Description string  `json:"description" form:"description" binding:"required"`
	CategoryID  int     `json:"category_id" form:"category_id" binding:"required"`
	Price       float64 `json:"price" form:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" form:"stock" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	CategoryID  int     `json:"category_id" form:"category_id"`
	Price       float64 `json:"price" form:"price"`
	Stock       *int    `json:"stock" form:"stock"`
	IsActive    *bool   `json:"is_active" form:"is_active"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	VariantID int `json:"variant_id"`
	SizeID    int `json:"size_id"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	VariantID int `json:"variant_id"`
	SizeID    int `json:"size_id"`
	Quantity  int `json:"quantity"`
}

type CartKeyRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	VariantID int `json:"variant_id"`
	SizeID    int `json:"size_id"`
}

type RemoveCartItemsRequest struct {
	Keys []CartKeyRequest `json:"keys"`
}

type ReplaceCartRequest struct {
	Items []ReplaceCartItem `json:"items"`
}

type ReplaceCartItem struct {
	ProductID int     `json:"product_id" binding:"required"`
	VariantID int     `json:"variant_id"`
	SizeID    int     `json:"size_id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	ImageURL  string  `json:"image_url"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
}

type CheckoutRequest struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	CouponCode    string `json:"coupon_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

type CreateCouponRequest struct {
	Code         string  `json:"code" binding:"required"`
	DiscountType string  `json:"discount_type" binding:"required,oneof=percent fixed"`
	Value        float64 `json:"value" binding:"required,gt=0"`
	MinSubtotal  float64 `json:"min_subtotal" binding:"gte=0"`
	UsageLimit   int     `json:"usage_limit" binding:"gte=0"`
	ExpiresAt    string  `json:"expires_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
