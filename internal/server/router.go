package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sellerhub/internal/auth"
	"sellerhub/internal/commons"
	"sellerhub/internal/customer"
	ordercontroller "sellerhub/internal/order/controller"
	"sellerhub/internal/product"
	"sellerhub/internal/settings"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Routes struct {
	Products  *product.Controller
	Customers *customer.Controller
	Orders    *ordercontroller.OrderController
	Settings  *settings.Controller
	Verifier  *auth.Verifier
	Registry  *prometheus.Registry
	DB        Pinger
}

func NewRouter(routes Routes, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(globalTracing())
	r.Use(ZapLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthzHandler(routes.DB, logger))
	r.Handle("/metrics", promhttp.HandlerFor(routes.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(routes.Verifier, logger))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", routes.Orders.CreateOrder)
			r.Get("/", routes.Orders.ListOrders)
			r.Get("/{orderId}", routes.Orders.GetOrder)
			r.Patch("/{orderId}", routes.Orders.TransitionOrder)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", routes.Products.HandleCreateProduct)
			r.Get("/", routes.Products.HandleListProducts)
			r.Post("/search", routes.Products.HandleSearchProducts)
			r.Delete("/{productId}", routes.Products.HandleDeleteProduct)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", routes.Customers.HandleCreate)
			r.Get("/", routes.Customers.HandleList)
			r.Get("/{customerId}", routes.Customers.HandleGet)
		})

		r.Get("/settings", routes.Settings.HandleGet)
		r.Put("/settings", routes.Settings.HandleUpdate)
	})

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func healthzHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check: database unreachable", zap.Error(err))
			commons.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Database: "down"}, logger)
			return
		}

		commons.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Database: "up"}, logger)
	}
}
