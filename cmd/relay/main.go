// Command relay serves the contact relay: POST /api/contact, health probes,
// Prometheus metrics and, when SITE_DIR is set, the built portfolio site.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/internal/config"
	"github.com/dmitrymomot/portfolio/internal/contact"
	"github.com/dmitrymomot/portfolio/internal/metrics"
	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

const (
	livenessPath  = "/health/live"
	readinessPath = "/health/ready"
	metricsPath   = "/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())

	if err := run(cfg, log); err != nil {
		log.Error("relay stopped", slog.Any("error", err))
		_ = logger.Flush()(context.Background())
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	tr, err := newTransport(cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	relay := contact.NewRelay(
		mailer.New(tr.sender, contact.NewRenderer(), cfg.Mailer),
		cfg.Sender(),
		cfg.Recipient(),
		contact.WithObserver(m),
	)

	opts := []internal.Option{
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(middlewares.WithAccessLogSkipPaths(livenessPath, readinessPath, metricsPath)),
			m.Middleware(),
			middlewares.Recover(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.AllowedOrigins...)),
		),
		internal.WithHandlers(relay),
		internal.WithErrorHandler(contact.ErrorHandler),
		internal.WithNotFoundHandler(contact.NotFound),
		internal.WithMethodNotAllowedHandler(contact.MethodNotAllowed),
		internal.WithHealthChecks(
			internal.WithLivenessPath(livenessPath),
			internal.WithReadinessPath(readinessPath),
			internal.WithReadinessCheck("mail_"+tr.name, tr.check),
		),
		internal.WithMount(metricsPath, m.Handler()),
	}
	if cfg.SiteDir != "" {
		opts = append(opts, internal.WithSite(os.DirFS(cfg.SiteDir)))
	}

	log.Info("contact relay configured",
		slog.String("transport", tr.name),
		slog.String("recipient", cfg.Recipient()),
		slog.Bool("site", cfg.SiteDir != ""),
	)

	return internal.New(opts...).Run(cfg.Address(),
		internal.Logger(log),
		internal.ShutdownTimeout(cfg.ShutdownTimeout),
		internal.ShutdownHook(logger.Flush()),
	)
}
