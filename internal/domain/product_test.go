package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductDisplayName(t *testing.T) {
	assert.Equal(t, "New Title", Product{Title: "New Title", Name: "Old Name"}.DisplayName())
	assert.Equal(t, "Old Name", Product{Name: "Old Name"}.DisplayName())
	assert.Empty(t, Product{}.DisplayName())
}

func TestProductEffectivePrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    float64
	}{
		{
			name:    "plain list price",
			product: Product{Price: 100},
			want:    100,
		},
		{
			name:    "sale price below list wins",
			product: Product{Price: 100, SalePrice: 80},
			want:    80,
		},
		{
			name:    "sale price above list is ignored",
			product: Product{Price: 100, SalePrice: 120},
			want:    100,
		},
		{
			name:    "percentage deal",
			product: Product{Price: 200, DealType: DealTypePercentage, DealValue: 25},
			want:    150,
		},
		{
			name:    "fixed deal",
			product: Product{Price: 200, DealType: DealTypeFixed, DealValue: 30},
			want:    170,
		},
		{
			name:    "fixed deal never goes negative",
			product: Product{Price: 20, DealType: DealTypeFixed, DealValue: 50},
			want:    0,
		},
		{
			name:    "percentage deal above 100 is ignored",
			product: Product{Price: 100, DealType: DealTypePercentage, DealValue: 150},
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.EffectivePrice())
		})
	}
}

func TestProductDiscountPercent(t *testing.T) {
	assert.Equal(t, 20, Product{Price: 100, SalePrice: 80}.DiscountPercent())
	assert.Equal(t, 0, Product{Price: 100}.DiscountPercent())
	assert.Equal(t, 0, Product{}.DiscountPercent())
	assert.Equal(t, 33, Product{Price: 29.99, SalePrice: 19.99}.DiscountPercent())
}

func TestProductCartLine(t *testing.T) {
	p := Product{
		ID:        "prod-1",
		Title:     "Velo Phone X",
		Price:     100,
		SalePrice: 90,
		Images:    []string{"a.jpg", "b.jpg"},
		Stock:     7,
		Category:  "phones",
		Brand:     "velo",
	}

	line := p.CartLine(2)

	assert.Equal(t, "prod-1", line.ProductID)
	assert.Equal(t, "Velo Phone X", line.Title)
	assert.Equal(t, "a.jpg", line.Image)
	assert.Equal(t, 90.0, line.UnitPrice)
	assert.Equal(t, 7, line.StockLimit)
	assert.Equal(t, 2, line.Quantity)
}

func TestProductInStock(t *testing.T) {
	assert.True(t, Product{Stock: 1}.InStock())
	assert.False(t, Product{Stock: 0}.InStock())
}

func TestIsValidReviewStatus(t *testing.T) {
	for _, s := range []string{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected} {
		assert.True(t, IsValidReviewStatus(s))
	}
	assert.False(t, IsValidReviewStatus("all"))
	assert.False(t, IsValidReviewStatus(""))
}
