// Package http exposes the storefront over a chi HTTP API: the cart, the
// product catalog proxy, and the admin surface.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velostore/storefront/internal/cart"
	"github.com/velostore/storefront/internal/catalog"
	"github.com/velostore/storefront/internal/domain"
	apperrors "github.com/velostore/storefront/pkg/errors"
	"github.com/velostore/storefront/pkg/httputil"
	"github.com/velostore/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	manager *cart.Manager
	catalog *catalog.Client
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(manager *cart.Manager, catalogClient *catalog.Client, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		manager: manager,
		catalog: catalogClient,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
// Quantity defaults to one unit when omitted.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateQuantityRequest is the JSON request body for updating an item's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the cart as returned to clients.
type CartView struct {
	Items []domain.Line `json:"items"`
	Total float64       `json:"total"`
	Count int           `json:"count"`
}

// RejectionView explains a refused cart mutation.
type RejectionView struct {
	Reason string   `json:"reason"`
	Stock  int      `json:"stock"`
	Cart   CartView `json:"cart"`
}

func viewOf(c domain.Cart) CartView {
	items := c.Items
	if items == nil {
		items = []domain.Line{}
	}
	return CartView{Items: items, Total: c.Total(), Count: c.Count()}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOf(h.manager.Snapshot())})
}

// AddItem handles POST /api/v1/cart/items. The product is fetched from the
// catalog so price and stock reflect the backend at the moment of adding.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	res := h.manager.AddItem(r.Context(), *product, req.Quantity)
	h.writeResult(w, r, res)
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}. A quantity
// below one removes the item.
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("productId is required"), h.logger)
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	res := h.manager.UpdateQuantity(r.Context(), productID, req.Quantity)
	h.writeResult(w, r, res)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("productId is required"), h.logger)
		return
	}

	res := h.manager.RemoveItem(r.Context(), productID)
	h.writeResult(w, r, res)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	res := h.manager.Clear(r.Context())
	h.writeResult(w, r, res)
}

// writeResult maps a cart mutation result to HTTP: rejections become 409
// with the reason and the unchanged cart, everything else returns the cart.
func (h *CartHandler) writeResult(w http.ResponseWriter, r *http.Request, res cart.Result) {
	if res.Rejected() {
		httputil.WriteJSON(w, http.StatusConflict, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "CART_REJECTED", Message: res.Reason},
			Data:  RejectionView{Reason: res.Reason, Stock: res.Stock, Cart: viewOf(res.Cart)},
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOf(res.Cart)})
}
