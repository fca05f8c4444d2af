package cart

import "github.com/velostore/storefront/internal/domain"

// Status classifies the outcome of a cart mutation.
type Status string

const (
	// StatusApplied means the mutation changed the cart.
	StatusApplied Status = "applied"

	// StatusRejected means the mutation was refused (stock ceiling or bad
	// input) and the cart is unchanged.
	StatusRejected Status = "rejected"

	// StatusNoop means the mutation had nothing to do (e.g. removing an
	// absent line) and the cart is unchanged.
	StatusNoop Status = "noop"
)

// Result reports the outcome of a cart mutation together with a snapshot of
// the cart after the operation. Rejections carry a caller-presentable reason
// and the stock ceiling involved, so views can tell the customer why nothing
// happened instead of silently doing nothing.
type Result struct {
	Status Status      `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Stock  int         `json:"stock,omitempty"`
	Cart   domain.Cart `json:"cart"`
}

// Applied reports whether the mutation changed the cart.
func (r Result) Applied() bool {
	return r.Status == StatusApplied
}

// Rejected reports whether the mutation was refused.
func (r Result) Rejected() bool {
	return r.Status == StatusRejected
}
