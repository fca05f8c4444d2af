// Package catalog implements the read-only HTTP client for the backend
// catalog API: categories, products, brands. The backend owns the data; this
// client only consumes it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/velostore/storefront/internal/domain"
	"github.com/velostore/storefront/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the backend catalog API.
type Client struct {
	http    HTTPDoer
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a catalog client. baseURL is the API root, e.g.
// "http://localhost:5000/api".
func NewClient(doer HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    doer,
		baseURL: baseURL,
		logger:  logger,
	}
}

// ProductFilter holds the supported product listing filters. Zero values are
// omitted from the query string.
type ProductFilter struct {
	Category string
	Brand    string
	MinPrice float64
	MaxPrice float64
	InStock  bool
	Search   string
	Sort     string
	Page     int
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.InStock {
		q.Set("inStock", "true")
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.getJSON(ctx, "/categories", nil, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if out.Categories == nil {
		out.Categories = []domain.Category{}
	}
	return out.Categories, nil
}

// ListProducts fetches one page of products matching the filter.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	var page ProductPage
	if err := c.getJSON(ctx, "/products", filter.query(), &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}
	return &page, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out struct {
		Product domain.Product `json:"product"`
	}
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &out.Product, nil
}

// ListBrands fetches the distinct brand names.
func (c *Client) ListBrands(ctx context.Context) ([]string, error) {
	var out struct {
		Brands []string `json:"brands"`
	}
	if err := c.getJSON(ctx, "/products/brands", nil, &out); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	if out.Brands == nil {
		out.Brands = []string{}
	}
	return out.Brands, nil
}

// getJSON performs a GET against the API and decodes a 200 response into dst.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call catalog api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "catalog")
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
