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
	"go.uber.org/multierr"

	"github.com/relistlabs/relist-backend/api/routes"
	authsvc "github.com/relistlabs/relist-backend/internal/auth"
	cartsvc "github.com/relistlabs/relist-backend/internal/cart"
	"github.com/relistlabs/relist-backend/internal/catalog"
	"github.com/relistlabs/relist-backend/internal/categories"
	checkoutsvc "github.com/relistlabs/relist-backend/internal/checkout"
	"github.com/relistlabs/relist-backend/internal/media"
	ordersvc "github.com/relistlabs/relist-backend/internal/orders"
	userssvc "github.com/relistlabs/relist-backend/internal/users"
	"github.com/relistlabs/relist-backend/pkg/config"
	"github.com/relistlabs/relist-backend/pkg/db"
	"github.com/relistlabs/relist-backend/pkg/logger"
	"github.com/relistlabs/relist-backend/pkg/metrics"
	"github.com/relistlabs/relist-backend/pkg/migrate"
	"github.com/relistlabs/relist-backend/pkg/redis"
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
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	deps, err := buildServices(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}
	deps.Config = cfg
	deps.Logger = logg
	deps.DB = dbClient
	deps.Redis = redisClient
	deps.HTTPMetrics = httpMetrics
	deps.MetricsRegistry = registry

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(context.Background(), "graceful shutdown failed", err)
		}
	}

	if err := closeResources(dbClient, redisClient); err != nil {
		logg.Error(context.Background(), "error closing resources", err)
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (routes.Deps, error) {
	conn := dbClient.DB()

	userRepo := userssvc.NewRepository(conn)
	productRepo := catalog.NewRepository(conn)
	categoryRepo := categories.NewRepository(conn)
	cartRepo := cartsvc.NewRepository(conn)
	orderRepo := ordersvc.NewRepository(conn)

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	userService, err := userssvc.NewService(userRepo)
	if err != nil {
		return routes.Deps{}, err
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	categoryService, err := categories.NewService(categoryRepo)
	if err != nil {
		return routes.Deps{}, err
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		DB:        dbClient,
		OrderRepo: orderRepo,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	orderService, err := ordersvc.NewService(orderRepo)
	if err != nil {
		return routes.Deps{}, err
	}

	mediaService, err := media.NewService(cfg.Uploads, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		AuthService:     authService,
		UserService:     userService,
		CatalogService:  catalogService,
		CategoryService: categoryService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		OrderService:    orderService,
		MediaService:    mediaService,
	}, nil
}

func closeResources(dbClient *db.Client, redisClient *redis.Client) error {
	var errs error
	if redisClient != nil {
		errs = multierr.Append(errs, redisClient.Close())
	}
	errs = multierr.Append(errs, dbClient.Close())
	return errs
}
