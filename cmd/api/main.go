package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/amaclone/storefront/api/routes"
	"github.com/amaclone/storefront/internal/auth"
	"github.com/amaclone/storefront/internal/cart"
	"github.com/amaclone/storefront/internal/localization"
	"github.com/amaclone/storefront/internal/notifications"
	"github.com/amaclone/storefront/internal/orders"
	productsvc "github.com/amaclone/storefront/internal/products"
	"github.com/amaclone/storefront/internal/reviews"
	"github.com/amaclone/storefront/internal/users"
	"github.com/amaclone/storefront/internal/wishlist"
	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/kv"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
	"github.com/amaclone/storefront/pkg/migrate"
	"github.com/amaclone/storefront/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.ConsoleLogs(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var (
		redisClient   *redis.Client
		backing       kv.Store
		sessionPrefix = "sf:session"
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		backing = kv.NewRedis(redisClient, cfg.Session.TTL)
		sessionPrefix = redisClient.SessionPrefix()
	} else {
		logg.Warn(ctx, "redis not configured, session state is process-local")
		backing = kv.NewMemory()
	}
	sessions := kv.NewSessions(backing, sessionPrefix)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	tables, err := localization.DefaultTables()
	requireService(ctx, logg, "locale tables", err)
	locales, err := localization.NewService(tables, sessions, logg, storefrontMetrics, cfg.Locale.Fallback)
	requireService(ctx, logg, "localization service", err)
	carts, err := cart.NewService(sessions, logg, storefrontMetrics)
	requireService(ctx, logg, "cart service", err)

	userRepo := users.NewRepository(dbClient.DB())
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	requireService(ctx, logg, "auth service", err)

	productService, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()))
	requireService(ctx, logg, "product service", err)
	reviewService, err := reviews.NewService(reviews.NewRepository(dbClient.DB()), dbClient)
	requireService(ctx, logg, "review service", err)
	wishlistService, err := wishlist.NewService(wishlist.NewRepository(dbClient.DB()))
	requireService(ctx, logg, "wishlist service", err)

	mailer, err := notifications.NewMailer(cfg.SMTP)
	requireService(ctx, logg, "mailer", err)
	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:    orders.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Users:   userRepo,
		Mailer:  mailer,
		Tables:  tables,
		Logger:  logg,
		AdminTo: cfg.SMTP.AdminTo,
	})
	requireService(ctx, logg, "order service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":   cfg.App.Env,
		"addr":  addr,
		"redis": redisClient != nil,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Gatherer:    registry,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
			Carts:       carts,
			Locales:     locales,
			Auth:        authService,
			Products:    productService,
			Reviews:     reviewService,
			Orders:      orderService,
			Wishlist:    wishlistService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	runErr = multierr.Append(runErr, server.Shutdown(shutdownCtx))
	if redisClient != nil {
		runErr = multierr.Append(runErr, redisClient.Close())
	}
	runErr = multierr.Append(runErr, dbClient.Close())

	if runErr != nil {
		logg.Error(ctx, "api server stopped with errors", runErr)
		os.Exit(1)
	}
}

func requireService(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to create "+name, err)
	os.Exit(1)
}
