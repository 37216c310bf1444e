package cli

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/config"
	"ProductCatalog/internal/mcpserver"
	"ProductCatalog/pkg/kit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Load the catalog once and serve it until SIGINT or SIGTERM.

Routes:
  /product-catalog/mcp         MCP streamable HTTP
  /product-catalog/rpc         JSON call endpoint
  /product-catalog/operations  operation listing
  /healthz /readyz /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, err := kit.NewLogger(service, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			log.Error("catalog load failed", zap.Error(err), zap.String("source", cfg.Catalog.Source))
			return err
		}
		log.Info("catalog loaded",
			zap.String("source", cfg.Catalog.Source),
			zap.Int("products", store.Len()),
			zap.Strings("categories", store.Categories()),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		h := buildHandler(store, cfg, log, cmd.Root().Version)
		if err := kit.Serve(ctx, cfg.Addr(), h, log, cfg.ShutdownTimeout); err != nil {
			log.Error("http server stopped", zap.Error(err))
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	},
}

func buildHandler(store *catalog.Store, cfg *config.Config, log *zap.Logger, version string) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	d := catalog.NewDispatcher(store,
		catalog.WithLogger(log),
		catalog.WithMetrics(kit.NewCallMetrics(reg, "catalog")),
	)

	s := &catalog.Server{
		Dispatcher: d,
		Log:        log,
		MCP:        mcpserver.NewHTTPHandler(mcpserver.New(d, version, log)),
	}

	return catalog.NewHandler(s, catalog.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        reg,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsToken:    cfg.Metrics.Token,
		RateLimitPerMin: cfg.RateLimit,
		Auth: kit.BoundaryAuth{
			JWTSecret:  cfg.Auth.JWTSecret,
			APIKeyHash: cfg.Auth.APIKeyHash,
		},
	})
}

func init() {
	f := serveCmd.Flags()
	f.String("host", "", "Host to bind to")
	f.Int("port", 0, "Port to listen on")
	f.Bool("metrics", true, "Expose /metrics")
	f.String("metrics-token", "", "Bearer token required on /metrics")
	f.Int("rate-limit", 0, "Requests per minute per client IP on the catalog (0 = off)")
	f.String("auth-jwt-secret", "", "HS256 secret; when set the catalog requires a bearer token")
	f.String("auth-key-hash", "", "bcrypt hash; when set the catalog accepts a matching api-key header")
	f.Duration("shutdown-timeout", 0, "Graceful shutdown budget")

	viper.BindPFlag(config.KeyHost, f.Lookup("host"))
	viper.BindPFlag(config.KeyPort, f.Lookup("port"))
	viper.BindPFlag(config.KeyMetricsEnabled, f.Lookup("metrics"))
	viper.BindPFlag(config.KeyMetricsToken, f.Lookup("metrics-token"))
	viper.BindPFlag(config.KeyRateLimit, f.Lookup("rate-limit"))
	viper.BindPFlag(config.KeyAuthJWTSecret, f.Lookup("auth-jwt-secret"))
	viper.BindPFlag(config.KeyAuthKeyHash, f.Lookup("auth-key-hash"))
	viper.BindPFlag(config.KeyShutdownTimeout, f.Lookup("shutdown-timeout"))
}
