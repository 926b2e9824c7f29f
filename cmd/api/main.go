package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/Zuby128/restorder-admin/api/routes"
	internalauth "github.com/Zuby128/restorder-admin/internal/auth"
	"github.com/Zuby128/restorder-admin/internal/categories"
	"github.com/Zuby128/restorder-admin/internal/foods"
	"github.com/Zuby128/restorder-admin/internal/orders"
	"github.com/Zuby128/restorder-admin/internal/saloons"
	"github.com/Zuby128/restorder-admin/internal/staff"
	"github.com/Zuby128/restorder-admin/internal/users"
	"github.com/Zuby128/restorder-admin/pkg/auth/session"
	"github.com/Zuby128/restorder-admin/pkg/cache"
	"github.com/Zuby128/restorder-admin/pkg/config"
	"github.com/Zuby128/restorder-admin/pkg/db"
	"github.com/Zuby128/restorder-admin/pkg/logger"
	"github.com/Zuby128/restorder-admin/pkg/metrics"
	"github.com/Zuby128/restorder-admin/pkg/migrate"
	"github.com/Zuby128/restorder-admin/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	cacheStore := cache.NewStore(redisClient, cfg.Cache)
	menuCache := foods.NewMenuCache(cacheStore)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	gormDB := dbClient.DB()

	ordersService, err := orders.NewService(orders.NewRepository(gormDB), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	foodsService, err := foods.NewService(foods.NewRepository(gormDB), menuCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create foods service", err)
		os.Exit(1)
	}
	categoriesService, err := categories.NewService(categories.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create categories service", err)
		os.Exit(1)
	}
	staffService, err := staff.NewService(staff.NewRepository(gormDB), sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}
	saloonsService, err := saloons.NewService(saloons.NewRepository(gormDB), ordersService, staffService)
	if err != nil {
		logg.Error(context.Background(), "failed to create saloons service", err)
		os.Exit(1)
	}
	authService, err := internalauth.NewService(users.NewRepository(gormDB), sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Redis:        redisClient,
		Sessions:     sessionManager,
		Gatherer:     registry,
		HTTPMetrics:  httpMetrics,
		AuthService:  authService,
		StaffService: staffService,
		Orders:       ordersService,
		Foods:        foodsService,
		Categories:   categoriesService,
		Saloons:      saloonsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		err = multierr.Append(err, redisClient.Close())
		err = multierr.Append(err, dbClient.Close())
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}
