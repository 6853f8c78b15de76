package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cfshr/aur/internal/catalog"
	"github.com/cfshr/aur/internal/newsletter"
	"github.com/cfshr/aur/internal/signup"
	"github.com/cfshr/aur/internal/store"
	"github.com/cfshr/aur/pkg/health"
	"github.com/cfshr/aur/pkg/middleware"
)

// RouterDeps carries everything the storefront routes need.
type RouterDeps struct {
	Store         *store.Store
	Catalog       *catalog.Catalog
	Signups       *signup.Client
	Newsletter    *newsletter.Client
	Health        *health.Handler
	Logger        *slog.Logger
	AllowedOrigin string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.CORS(deps.AllowedOrigin))

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	cartHandler := NewCartHandler(deps.Store, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	signupHandler := NewSignupHandler(deps.Signups, deps.Newsletter, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/{slug}", catalogHandler.GetProduct)
		})

		r.Post("/signup", signupHandler.CreateSignup)
		r.Post("/newsletter/subscribe", signupHandler.Subscribe)
	})

	return r
}
