package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductColumnsCoalesceNullables(t *testing.T) {
	// category_id, image_url and cloudinary_id allow NULL in the schema;
	// scanning them into non-pointer fields requires a coalesce.
	for _, col := range []string{"category_id", "image_url", "cloudinary_id"} {
		assert.Contains(t, productColumns, "COALESCE("+col, col)
	}
}

func TestOrderByWhitelist(t *testing.T) {
	assert.Equal(t, "price ASC", ProductFilter{Sort: "price_asc"}.orderBy())
	assert.Equal(t, "name DESC", ProductFilter{Sort: "name_desc"}.orderBy())
}

func TestOrderByFallsBackOnUnknownSort(t *testing.T) {
	assert.Equal(t, "created_at DESC", ProductFilter{Sort: "id; DROP TABLE products"}.orderBy())
}
