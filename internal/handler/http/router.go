package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velostore/storefront/pkg/health"
	"github.com/velostore/storefront/pkg/middleware"
)

// RouterDeps bundles the handlers and infrastructure the router needs.
type RouterDeps struct {
	Cart    *CartHandler
	Catalog *CatalogHandler
	Admin   *AdminHandler
	Health  *health.Handler
	Logger  *slog.Logger

	AllowedOrigins []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))

	corsCfg := middleware.DefaultCORSConfig()
	if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = deps.AllowedOrigins
	}
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Storefront catalog
		r.Get("/categories", deps.Catalog.ListCategories)
		r.Get("/products", deps.Catalog.ListProducts)
		r.Get("/products/{productId}", deps.Catalog.GetProduct)
		r.Get("/brands", deps.Catalog.ListBrands)

		// Cart
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Delete("/", deps.Cart.ClearCart)

			r.Post("/items", deps.Cart.AddItem)
			r.Put("/items/{productId}", deps.Cart.UpdateItemQuantity)
			r.Delete("/items/{productId}", deps.Cart.RemoveItem)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", deps.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(deps.Admin.RequireAdmin)

				r.Get("/me", deps.Admin.Me)
				r.Post("/logout", deps.Admin.Logout)

				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", deps.Admin.ListReviews)
					r.Get("/stats", deps.Admin.ReviewStats)
					r.Put("/{reviewId}/approve", deps.Admin.ApproveReview)
					r.Put("/{reviewId}/reject", deps.Admin.RejectReview)
					r.Delete("/{reviewId}", deps.Admin.DeleteReview)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", deps.Admin.ListAdminCategories)
					r.Post("/", deps.Admin.CreateCategory)
					r.Put("/{categoryId}", deps.Admin.UpdateCategory)
					r.Delete("/{categoryId}", deps.Admin.DeleteCategory)
				})
			})
		})
	})

	return r
}
