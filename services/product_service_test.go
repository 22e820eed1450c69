package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace/models"
)

func existingProduct() *models.Product {
	return &models.Product{
		ID:          1,
		SellerID:    2,
		CategoryID:  3,
		Name:        "Rattan Chair",
		Slug:        "rattan-chair",
		Description: "Hand-woven",
		Price:       150,
		Stock:       7,
		IsActive:    true,
	}
}

func TestApplyProductChangesKeepsStockWhenOmitted(t *testing.T) {
	product := existingProduct()

	applyProductChanges(product, models.UpdateProductRequest{Name: "Rattan Armchair"})

	assert.Equal(t, "Rattan Armchair", product.Name)
	assert.Equal(t, "rattan-armchair", product.Slug)
	assert.Equal(t, 7, product.Stock)
}

func TestApplyProductChangesKeepsStockOnPriceTweak(t *testing.T) {
	product := existingProduct()

	applyProductChanges(product, models.UpdateProductRequest{Price: 175})

	assert.InDelta(t, 175, product.Price, 1e-9)
	assert.Equal(t, 7, product.Stock)
}

func TestApplyProductChangesSetsStockToZero(t *testing.T) {
	product := existingProduct()
	zero := 0

	applyProductChanges(product, models.UpdateProductRequest{Stock: &zero})

	assert.Equal(t, 0, product.Stock)
}

func TestApplyProductChangesIgnoresEmptyFields(t *testing.T) {
	product := existingProduct()
	before := *product

	applyProductChanges(product, models.UpdateProductRequest{})

	assert.Equal(t, before, *product)
}

func TestApplyProductChangesTogglesActive(t *testing.T) {
	product := existingProduct()
	inactive := false

	applyProductChanges(product, models.UpdateProductRequest{IsActive: &inactive})

	assert.False(t, product.IsActive)
	assert.Equal(t, 7, product.Stock)
}
