package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/craftlane/storefront/internal/service"
	"github.com/craftlane/storefront/pkg/health"
	"github.com/craftlane/storefront/pkg/httputil"
	"github.com/craftlane/storefront/pkg/middleware"
)

const serviceName = "catalog-api"

// RouterConfig carries the router's non-service collaborators.
type RouterConfig struct {
	UploadsDir        string
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all catalog API routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Welcome route
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Storefront API running"})
	})

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Pprof debug endpoints behind an IP allowlist
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Static product images
	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	// Product API endpoints
	productHandler := NewProductHandler(catalogService, logger)

	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
		r.Post("/", productHandler.CreateProduct)
	})

	return r
}
