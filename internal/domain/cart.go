package domain

import "github.com/shopspring/decimal"

// Line represents one product held in the cart. The JSON layout mirrors the
// backend's product record plus a quantity field, which is also the layout of
// the persisted cart snapshot.
type Line struct {
	ProductID string `json:"_id"`
	Title     string `json:"title"`
	Image     string `json:"image,omitempty"`
	Category  string `json:"category,omitempty"`
	Brand     string `json:"brand,omitempty"`

	// UnitPrice is a snapshot of the product's price at the moment it was
	// added; it is not re-synced with later catalog changes.
	UnitPrice float64 `json:"price"`

	// StockLimit is the available stock snapshotted when the line was added
	// or last merged. It is the local ceiling for quantity edits.
	StockLimit int `json:"stock"`

	Quantity int `json:"quantity"`
}

// Subtotal returns unit price times quantity for this line.
func (l Line) Subtotal() float64 {
	f, _ := decimal.NewFromFloat(l.UnitPrice).
		Mul(decimal.NewFromInt(int64(l.Quantity))).
		Float64()
	return f
}

// Cart is a snapshot of the session cart: an ordered sequence of lines,
// unique by product ID.
type Cart struct {
	Items []Line `json:"items"`
}

// Total returns the sum of unit price times quantity over all lines.
// Decimal accumulation avoids binary float drift on long carts.
func (c Cart) Total() float64 {
	total := decimal.Zero
	for _, l := range c.Items {
		total = total.Add(decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	f, _ := total.Float64()
	return f
}

// Count returns the total number of units across all lines, not the number
// of distinct lines.
func (c Cart) Count() int {
	var count int
	for _, l := range c.Items {
		count += l.Quantity
	}
	return count
}

// FindLine returns the index of the line matching the given product ID,
// or -1 if not found.
func (c Cart) FindLine(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart, safe to hand to observers.
func (c Cart) Clone() Cart {
	items := make([]Line, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
