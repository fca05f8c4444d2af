package domain

import "github.com/shopspring/decimal"

// Deal type constants as delivered by the catalog API.
const (
	DealTypePercentage = "percentage"
	DealTypeFixed      = "fixed"
)

// Rating holds the aggregate review score for a product.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Product represents a catalog product as delivered by the backend API.
// Older records use "name" where newer ones use "title"; DisplayName
// reconciles the two.
type Product struct {
	ID         string   `json:"_id"`
	Title      string   `json:"title,omitempty"`
	Name       string   `json:"name,omitempty"`
	Price      float64  `json:"price"`
	SalePrice  float64  `json:"salePrice,omitempty"`
	Images     []string `json:"images,omitempty"`
	Stock      int      `json:"stock"`
	Category   string   `json:"category,omitempty"`
	Brand      string   `json:"brand,omitempty"`
	Rating     Rating   `json:"rating"`
	ShortSpecs []string `json:"shortSpecs,omitempty"`
	DealType   string   `json:"dealType,omitempty"`
	DealValue  float64  `json:"dealValue,omitempty"`
}

// DisplayName returns the product's title, falling back to the legacy name field.
func (p Product) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// PrimaryImage returns the first product image, or empty when none exist.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock reports whether the product has purchasable stock.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// EffectivePrice returns the price a customer actually pays: the sale price
// when one is set below the list price, otherwise the list price with any
// active deal applied. Never negative.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}

	price := decimal.NewFromFloat(p.Price)
	switch p.DealType {
	case DealTypePercentage:
		if p.DealValue > 0 && p.DealValue <= 100 {
			discount := price.Mul(decimal.NewFromFloat(p.DealValue)).Div(decimal.NewFromInt(100))
			price = price.Sub(discount)
		}
	case DealTypeFixed:
		if p.DealValue > 0 {
			price = price.Sub(decimal.NewFromFloat(p.DealValue))
		}
	}

	if price.IsNegative() {
		return 0
	}
	f, _ := price.Float64()
	return f
}

// DiscountPercent returns the rounded percentage saved off the list price,
// or 0 when there is no active discount.
func (p Product) DiscountPercent() int {
	if p.Price <= 0 {
		return 0
	}
	effective := p.EffectivePrice()
	if effective >= p.Price {
		return 0
	}
	pct := decimal.NewFromFloat(p.Price - effective).
		Div(decimal.NewFromFloat(p.Price)).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(pct.IntPart())
}

// CartLine builds a cart line from the product with the given quantity,
// snapshotting the effective price and available stock.
func (p Product) CartLine(quantity int) Line {
	return Line{
		ProductID:  p.ID,
		Title:      p.DisplayName(),
		Image:      p.PrimaryImage(),
		Category:   p.Category,
		Brand:      p.Brand,
		UnitPrice:  p.EffectivePrice(),
		StockLimit: p.Stock,
		Quantity:   quantity,
	}
}
