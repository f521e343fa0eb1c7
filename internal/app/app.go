package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SammyMuraya-DA/online-cyber/internal/checkout"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/content"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/order"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/payment"
	"github.com/SammyMuraya-DA/online-cyber/internal/handler"
	"github.com/SammyMuraya-DA/online-cyber/internal/notify"
	"github.com/SammyMuraya-DA/online-cyber/internal/storage/postgres"
	"github.com/SammyMuraya-DA/online-cyber/pkg/health"
	"github.com/SammyMuraya-DA/online-cyber/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories. The catalog read path degrades to the built-in list when
	// the store is unreachable.
	serviceRepo := catalog.WithFallback(postgres.NewServiceRepository(pool), lg.Named("catalog"))
	orderRepo := postgres.NewOrderRepository(pool)
	contentRepo := postgres.NewContentRepository(pool)

	// Notification: email when SMTP is configured, no-op otherwise. Failures
	// are observed by the order pipeline, never surfaced.
	var notifier notify.Notifier = notify.Noop{}
	if smtp := cfg.notifySMTP(); smtp.Enabled() {
		notifier = notify.NewSMTPNotifier(smtp)
		lg.Info("Order notifications enabled", zap.String("smtp", smtp.Host))
	}

	// Domain services.
	orderService := order.NewService(orderRepo, notifier, lg.Named("orders"))
	contentService := content.NewService(contentRepo, lg.Named("content"))
	checkoutManager := checkout.NewManager(orderService, payment.Config{
		ProcessingDelay: cfg.Payment.ProcessingDelay,
		SuccessDisplay:  cfg.Payment.SuccessDisplay,
	}, lg.Named("checkout"))

	// HTTP surface.
	h := handler.New(serviceRepo, contentService, checkoutManager, orderRepo)

	root := chi.NewRouter()
	root.Get("/livez", healthSvc.LiveEndpoint)
	root.Get("/readyz", healthSvc.ReadyEndpoint)
	root.Mount("/api", h.Routes(cfg.AdminToken))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(
			httpmiddleware.Wrap(root,
				httpmiddleware.InjectLogger(zctx.From(ctx)),
				httpmiddleware.Recovery(),
				httpmiddleware.CORS(httpmiddleware.CORSConfig{
					AllowOrigins: cfg.CORS.Origins,
				}),
				httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
					Max:    cfg.RateLimit.Max,
					Window: cfg.RateLimit.Window,
				}),
				httpmiddleware.RequestID(),
				httpmiddleware.Session(),
				httpmiddleware.LogRequests(),
			),
			"storefront",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	g, ctx := errgroup.WithContext(ctx)

	// Idle checkout sessions are swept in the background.
	g.Go(func() error {
		checkoutManager.Run(ctx, cfg.Session.SweepInterval, cfg.Session.MaxIdle)
		return nil
	})

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	g.Go(func() error {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		return nil
	})

	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})

	return g.Wait()
}
