package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

// MountPath is the namespace the catalog is served under.
const MountPath = "/product-catalog"

const rateLimitWindow = time.Minute

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// RateLimitPerMin caps requests per client IP on the catalog mount; 0 disables it.
	RateLimitPerMin int
	Auth            kit.BoundaryAuth
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", s.readyz)

	r.Route(MountPath, func(cr chi.Router) {
		if deps.RateLimitPerMin > 0 {
			cr.Use(kit.NewIPRateLimiter(deps.RateLimitPerMin, rateLimitWindow).Middleware)
		}
		cr.Use(deps.Auth.Middleware)
		cr.Mount("/", s.Routes())
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePattern))

	if !deps.MetricsEnabled {
		return
	}

	h := promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})
	if deps.MetricsToken == "" {
		r.Handle("/metrics", h)
		return
	}
	r.With(kit.MetricsAuth(deps.MetricsToken)).Handle("/metrics", h)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.Dispatcher == nil || s.Dispatcher.Store() == nil || s.Dispatcher.Store().Len() == 0 {
		if s.Log != nil {
			s.Log.Warn("readyz failed: catalog not loaded")
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}
