package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storefrontgo/dashboard/pkg/health"
	"github.com/storefrontgo/dashboard/pkg/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Payment  *PaymentHandler
	Order    *OrderHandler
	Catalog  *CatalogHandler
	Client   *ClientHandler
	Health   *health.Handler
	Logger   *slog.Logger
	CORS     middleware.CORSConfig
}

// NewRouter assembles the full middleware chain and API surface.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.RequestLog(deps.Logger))
	r.Use(middleware.Metrics("dashboard"))
	r.Use(middleware.Tracing("dashboard"))
	r.Use(middleware.Identity)

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", deps.Cart.Routes)
		r.Route("/checkout", deps.Checkout.Routes)
		r.Route("/payments", deps.Payment.Routes)
		r.Route("/orders", deps.Order.Routes)
		r.Route("/clients", deps.Client.Routes)
		r.Get("/products", deps.Catalog.ListProducts)
		r.Post("/products", deps.Catalog.CreateProduct)
		r.Delete("/products/{productID}", deps.Catalog.DeleteProduct)
		r.Get("/notifications", deps.Catalog.ListNotifications)
	})

	return r
}
