package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/velostore/storefront/internal/domain"
	apperrors "github.com/velostore/storefront/pkg/errors"
	"github.com/velostore/storefront/pkg/httpclient"
	"github.com/velostore/storefront/pkg/slug"
)

// CategoryClient manages the category catalog through the admin API.
type CategoryClient struct {
	http    HTTPDoer
	baseURL string
	tokens  TokenSource
	logger  *slog.Logger
}

// NewCategoryClient creates a category admin client. All requests carry the
// session's bearer token.
func NewCategoryClient(doer HTTPDoer, baseURL string, tokens TokenSource, logger *slog.Logger) *CategoryClient {
	return &CategoryClient{
		http:    doer,
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
	}
}

// CategoryInput is the payload for creating or updating a category. When
// Slug is empty it is derived from Name.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	ShowOnHome  bool   `json:"showOnHome"`
}

func (in *CategoryInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperrors.InvalidInput("category name is required")
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	} else {
		in.Slug = slug.Generate(in.Slug)
	}
	if in.Slug == "" {
		return apperrors.InvalidInput("category name must contain at least one letter or digit")
	}
	return nil
}

// List fetches all categories.
func (c *CategoryClient) List(ctx context.Context) ([]domain.Category, error) {
	var out struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/admin/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Create adds a new category. The slug is derived from the name when not
// given explicitly.
func (c *CategoryClient) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var out struct {
		Category domain.Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/admin/categories", in, &out); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "category created",
		slog.String("category_id", out.Category.ID),
		slog.String("slug", out.Category.Slug),
	)
	return &out.Category, nil
}

// Update replaces an existing category's fields.
func (c *CategoryClient) Update(ctx context.Context, categoryID string, in CategoryInput) (*domain.Category, error) {
	if categoryID == "" {
		return nil, apperrors.InvalidInput("category id is required")
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var out struct {
		Category domain.Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/admin/categories/"+categoryID, in, &out); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "category updated",
		slog.String("category_id", categoryID),
	)
	return &out.Category, nil
}

// Delete removes a category. The backend rejects deleting a category that
// still has products; that surfaces as a conflict error.
func (c *CategoryClient) Delete(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return apperrors.InvalidInput("category id is required")
	}

	if err := c.do(ctx, http.MethodDelete, c.baseURL+"/admin/categories/"+categoryID, nil, nil); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "category deleted",
		slog.String("category_id", categoryID),
	)
	return nil
}

func (c *CategoryClient) do(ctx context.Context, method, endpoint string, body, out any) error {
	token := c.tokens.Token()
	if token == "" {
		return apperrors.Unauthorized("admin session required")
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call category api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, "categories")
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode category response: %w", err)
		}
	}
	return nil
}
