package server

import (
	"net/http"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/config"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	storefront handler.StorefrontHandler,
	products handler.ProductHandler,
	productsAdmin handler.ProductAdminHandler,
	services handler.ServiceHandler,
	servicesAdmin handler.ServiceAdminHandler,
	sales handler.SaleHandler,
	clients handler.ClientHandler,
	users handler.UserHandler,
	banners handler.BannerHandler,
	dashboard handler.DashboardHandler,
	activity handler.ActivityLogHandler,
	prefs handler.PrefsHandler,
	export handler.ExportHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))
	r.Use(MetricsMiddleware)

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		storefront.RegisterRoutes(api)

		// Everything else needs a valid access token. Per-operation
		// capability checks live on the individual routes.
		api.Group(func(pr chi.Router) {
			pr.Use(AuthMiddleware(cfg.JWTSecret))
			auth.RegisterProtectedRoutes(pr)
			products.RegisterRoutes(pr)
			productsAdmin.RegisterRoutes(pr)
			services.RegisterRoutes(pr)
			servicesAdmin.RegisterRoutes(pr)
			sales.RegisterRoutes(pr)
			clients.RegisterRoutes(pr)
			users.RegisterRoutes(pr)
			banners.RegisterRoutes(pr)
			dashboard.RegisterRoutes(pr)
			activity.RegisterRoutes(pr)
			prefs.RegisterRoutes(pr)
			export.RegisterRoutes(pr)
		})
	})

	return r
}
