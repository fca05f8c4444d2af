package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []Line
		want  float64
	}{
		{
			name:  "empty cart",
			items: nil,
			want:  0,
		},
		{
			name: "single line",
			items: []Line{
				{ProductID: "a", UnitPrice: 19.99, Quantity: 2},
			},
			want: 39.98,
		},
		{
			name: "decimal cents accumulate exactly",
			items: []Line{
				{ProductID: "a", UnitPrice: 0.1, Quantity: 3},
				{ProductID: "b", UnitPrice: 0.2, Quantity: 3},
			},
			want: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cart{Items: tt.items}.Total())
		})
	}
}

func TestCartCount(t *testing.T) {
	c := Cart{Items: []Line{
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 5},
	}}
	assert.Equal(t, 7, c.Count())
	assert.Zero(t, Cart{}.Count())
}

func TestCartFindLine(t *testing.T) {
	c := Cart{Items: []Line{
		{ProductID: "a"},
		{ProductID: "b"},
	}}
	assert.Equal(t, 0, c.FindLine("a"))
	assert.Equal(t, 1, c.FindLine("b"))
	assert.Equal(t, -1, c.FindLine("missing"))
}

func TestCartClone(t *testing.T) {
	c := Cart{Items: []Line{{ProductID: "a", Quantity: 1}}}

	clone := c.Clone()
	clone.Items[0].Quantity = 99

	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestLineSubtotal(t *testing.T) {
	l := Line{UnitPrice: 2.5, Quantity: 4}
	require.Equal(t, 10.0, l.Subtotal())
}
