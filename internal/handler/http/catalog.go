package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velostore/storefront/internal/catalog"
	"github.com/velostore/storefront/internal/domain"
	apperrors "github.com/velostore/storefront/pkg/errors"
	"github.com/velostore/storefront/pkg/httpclient"
	"github.com/velostore/storefront/pkg/httputil"
)

// CatalogHandler proxies catalog reads to the backend product API. Listing
// endpoints degrade to empty results when the backend is down, so the
// storefront renders an empty shelf instead of an error page.
type CatalogHandler struct {
	catalog *catalog.Client
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(catalogClient *catalog.Client, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogClient,
		logger:  logger,
	}
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		if h.degraded(r, err, "categories") {
			httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: []domain.Category{}})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	page, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		if h.degraded(r, err, "products") {
			httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: catalog.ProductPage{
				Products: []domain.Product{},
				Page:     1,
				Pages:    1,
			}})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// GetProduct handles GET /api/v1/products/{productId}. Detail pages do not
// degrade; a missing product is a hard error.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("productId is required"), h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListBrands handles GET /api/v1/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.ListBrands(r.Context())
	if err != nil {
		if h.degraded(r, err, "brands") {
			httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: []string{}})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if brands == nil {
		brands = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// degraded reports whether the error is a backend availability failure that
// listing endpoints absorb by serving empty results.
func (h *CatalogHandler) degraded(r *http.Request, err error, resource string) bool {
	if !errors.Is(err, apperrors.ErrServiceUnavail) && !errors.Is(err, httpclient.ErrCircuitOpen) {
		return false
	}
	h.logger.WarnContext(r.Context(), "catalog unavailable, serving empty results",
		slog.String("resource", resource),
		slog.String("error", err.Error()),
	)
	return true
}

func filterFromQuery(r *http.Request) catalog.ProductFilter {
	q := r.URL.Query()
	filter := catalog.ProductFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil && v > 0 {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil && v > 0 {
		filter.MaxPrice = v
	}
	if q.Get("inStock") == "true" {
		filter.InStock = true
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 1 {
		filter.Page = v
	}
	return filter
}
