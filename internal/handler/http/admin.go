package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velostore/storefront/internal/admin"
	apperrors "github.com/velostore/storefront/pkg/errors"
	"github.com/velostore/storefront/pkg/httputil"
	"github.com/velostore/storefront/pkg/validator"
)

// AdminHandler handles the admin surface: authentication, review
// moderation, and category management.
type AdminHandler struct {
	session    *admin.Session
	reviews    *admin.ReviewClient
	categories *admin.CategoryClient
	logger     *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(
	session *admin.Session,
	reviews *admin.ReviewClient,
	categories *admin.CategoryClient,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		session:    session,
		reviews:    reviews,
		categories: categories,
		logger:     logger,
	}
}

// RequireAdmin rejects requests when no admin session is held.
func (h *AdminHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.session.Authenticated() {
			httputil.WriteError(w, r, apperrors.Unauthorized("admin session required"), h.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Session ---

// LoginRequest is the JSON request body for admin sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// Me handles GET /api/v1/admin/me
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.session.Me(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// Logout handles POST /api/v1/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "logged out"}})
}

// --- Review moderation ---

// ListReviews handles GET /api/v1/admin/reviews
func (h *AdminHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := admin.ReviewFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if v, err := strconv.Atoi(q.Get("rating")); err == nil && v > 0 {
		filter.Rating = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 1 {
		filter.Page = v
	}

	page, err := h.reviews.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// ReviewStats handles GET /api/v1/admin/reviews/stats
func (h *AdminHandler) ReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reviews.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}

// ApproveReview handles PUT /api/v1/admin/reviews/{reviewId}/approve
func (h *AdminHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")
	if err := h.reviews.Approve(r.Context(), reviewID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "approved"}})
}

// RejectReviewRequest is the JSON request body for rejecting a review.
type RejectReviewRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RejectReview handles PUT /api/v1/admin/reviews/{reviewId}/reject
func (h *AdminHandler) RejectReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")

	var req RejectReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.reviews.Reject(r.Context(), reviewID, req.Reason); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "rejected"}})
}

// DeleteReview handles DELETE /api/v1/admin/reviews/{reviewId}
func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")
	if err := h.reviews.Delete(r.Context(), reviewID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// --- Category management ---

// ListAdminCategories handles GET /api/v1/admin/categories
func (h *AdminHandler) ListAdminCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// CreateCategory handles POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in admin.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	category, err := h.categories.Create(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: category})
}

// UpdateCategory handles PUT /api/v1/admin/categories/{categoryId}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	var in admin.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	category, err := h.categories.Update(r.Context(), categoryID, in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// DeleteCategory handles DELETE /api/v1/admin/categories/{categoryId}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	if err := h.categories.Delete(r.Context(), categoryID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}
