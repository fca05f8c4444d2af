package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/velostore/storefront/internal/domain"
	apperrors "github.com/velostore/storefront/pkg/errors"
	"github.com/velostore/storefront/pkg/httpclient"
)

// ReviewClient moderates customer reviews through the admin review API.
type ReviewClient struct {
	http    HTTPDoer
	baseURL string
	tokens  TokenSource
	logger  *slog.Logger
}

// NewReviewClient creates a review moderation client. All requests carry the
// session's bearer token.
func NewReviewClient(doer HTTPDoer, baseURL string, tokens TokenSource, logger *slog.Logger) *ReviewClient {
	return &ReviewClient{
		http:    doer,
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
	}
}

// ReviewFilter narrows a review listing. Zero values mean "no filter".
type ReviewFilter struct {
	Status string
	Rating int
	Search string
	Page   int
}

func (f ReviewFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" && f.Status != "all" {
		q.Set("status", f.Status)
	}
	if f.Rating > 0 {
		q.Set("rating", strconv.Itoa(f.Rating))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// ReviewPage is one page of a review listing.
type ReviewPage struct {
	Reviews []domain.Review `json:"reviews"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
}

// List fetches reviews matching the filter.
func (c *ReviewClient) List(ctx context.Context, filter ReviewFilter) (*ReviewPage, error) {
	if filter.Status != "" && filter.Status != "all" && !domain.IsValidReviewStatus(filter.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid review status %q", filter.Status))
	}

	endpoint := c.baseURL + "/admin/reviews"
	if q := filter.query().Encode(); q != "" {
		endpoint += "?" + q
	}

	var out ReviewPage
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches aggregate moderation counters.
func (c *ReviewClient) Stats(ctx context.Context) (*domain.ReviewStats, error) {
	var out struct {
		Stats domain.ReviewStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/admin/reviews/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// Approve marks a pending review as approved, making it publicly visible.
func (c *ReviewClient) Approve(ctx context.Context, reviewID string) error {
	if reviewID == "" {
		return apperrors.InvalidInput("review id is required")
	}

	err := c.do(ctx, http.MethodPut, c.baseURL+"/admin/reviews/"+reviewID+"/approve", nil, nil)
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "review approved", slog.String("review_id", reviewID))
	return nil
}

// Reject marks a review as rejected. The reason is mandatory; it is shown to
// the review's author.
func (c *ReviewClient) Reject(ctx context.Context, reviewID, reason string) error {
	if reviewID == "" {
		return apperrors.InvalidInput("review id is required")
	}
	if strings.TrimSpace(reason) == "" {
		return apperrors.InvalidInput("a rejection reason is required")
	}

	body := map[string]string{"reason": reason}
	err := c.do(ctx, http.MethodPut, c.baseURL+"/admin/reviews/"+reviewID+"/reject", body, nil)
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "review rejected", slog.String("review_id", reviewID))
	return nil
}

// Delete removes a review permanently.
func (c *ReviewClient) Delete(ctx context.Context, reviewID string) error {
	if reviewID == "" {
		return apperrors.InvalidInput("review id is required")
	}

	err := c.do(ctx, http.MethodDelete, c.baseURL+"/admin/reviews/"+reviewID, nil, nil)
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "review deleted", slog.String("review_id", reviewID))
	return nil
}

func (c *ReviewClient) do(ctx context.Context, method, endpoint string, body, out any) error {
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
		return fmt.Errorf("call review api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, "reviews")
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode review response: %w", err)
		}
	}
	return nil
}
