package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/orderview-backend/api/controllers"
	ordercontrollers "github.com/angelmondragon/orderview-backend/api/controllers/orders"
	"github.com/angelmondragon/orderview-backend/api/middleware"
	"github.com/angelmondragon/orderview-backend/internal/orders"
	"github.com/angelmondragon/orderview-backend/pkg/config"
	"github.com/angelmondragon/orderview-backend/pkg/enums"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
	"github.com/angelmondragon/orderview-backend/pkg/metrics"
)

// RouterParams groups the dependencies of the HTTP surface. Pingers and
// MetricsHandler are optional.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          controllers.Pinger
	Orders         orders.Service
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(p RouterParams) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, p.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})
	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/orders/{orderId}/products", func(r chi.Router) {
			r.Get("/", ordercontrollers.Products(p.Orders, logg))
			r.Get("/{orderDetailId}/refund", ordercontrollers.RefundSummary(p.Orders, logg))
			r.With(middleware.RequireRole(logg, enums.EmployeeRoleAdmin, enums.EmployeeRoleOrderManager)).
				Post("/{orderDetailId}/refunds", ordercontrollers.Refund(p.Orders, logg))
		})
	})

	return r
}
