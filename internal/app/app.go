// Package app wires the dashboard service together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefrontgo/dashboard/internal/config"
	"github.com/storefrontgo/dashboard/internal/event"
	"github.com/storefrontgo/dashboard/internal/gateway"
	handlerhttp "github.com/storefrontgo/dashboard/internal/handler/http"
	pgrepo "github.com/storefrontgo/dashboard/internal/repository/postgres"
	"github.com/storefrontgo/dashboard/internal/repository/postgres/migrations"
	redisrepo "github.com/storefrontgo/dashboard/internal/repository/redis"
	"github.com/storefrontgo/dashboard/internal/service"
	"github.com/storefrontgo/dashboard/pkg/database"
	"github.com/storefrontgo/dashboard/pkg/health"
	"github.com/storefrontgo/dashboard/pkg/httpclient"
	"github.com/storefrontgo/dashboard/pkg/kafka"
	"github.com/storefrontgo/dashboard/pkg/middleware"
	"github.com/storefrontgo/dashboard/pkg/tracing"
)

// App is the assembled dashboard service.
type App struct {
	cfg    *config.Config
	log    *slog.Logger
	server *http.Server

	redisClient     *redis.Client
	producer        *kafka.Producer
	pool            interface{ Close() }
	tracingShutdown func(context.Context) error
}

// New builds the app: connects dependencies, constructs services and the
// router.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	tracingShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  "dashboard",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.TracingEndpoint,
		SampleRate:   cfg.TracingSampleRate,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	pgConfig := database.DefaultPostgresConfig()
	pgConfig.Host = cfg.PostgresHost
	pgConfig.Port = cfg.PostgresPort
	pgConfig.User = cfg.PostgresUser
	pgConfig.Password = cfg.PostgresPassword
	pgConfig.DBName = cfg.PostgresDB
	pool, err := database.NewPostgresPool(ctx, &pgConfig, log)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	producer := kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), log)

	baseClient := httpclient.New(httpclient.DefaultConfig())
	orderClient := httpclient.NewBreakerClient(baseClient, httpclient.DefaultBreakerConfig("order-service"), log)
	paymentClient := httpclient.NewBreakerClient(baseClient, httpclient.DefaultBreakerConfig("payment-service"), log)
	productClient := httpclient.NewBreakerClient(baseClient, httpclient.DefaultBreakerConfig("product-service"), log)
	notificationClient := httpclient.NewBreakerClient(baseClient, httpclient.DefaultBreakerConfig("notification-service"), log)
	clientClient := httpclient.NewBreakerClient(baseClient, httpclient.DefaultBreakerConfig("client-service"), log)

	orderGateway := gateway.NewOrderGateway(orderClient, cfg.OrderServiceURL)
	paymentGateway := gateway.NewPaymentGateway(paymentClient, cfg.PaymentServiceURL)
	catalogGateway := gateway.NewCatalogGateway(productClient, cfg.ProductServiceURL)
	notificationGateway := gateway.NewNotificationGateway(notificationClient, cfg.NotificationServiceURL)
	clientGateway := gateway.NewClientGateway(clientClient, cfg.ClientServiceURL)

	snapshots := redisrepo.NewCartSnapshotRepository(redisClient, cfg.CartSnapshotTTL)
	checkoutLog := pgrepo.NewCheckoutLogRepository(pool)
	publisher := event.NewPublisher(producer)

	cartSvc := service.NewCartService(snapshots, cfg.ShippingPolicy(), log)
	checkoutSvc := service.NewCheckoutService(cartSvc, orderGateway, cfg.CheckoutPolicy, checkoutLog, publisher)
	paymentSvc := service.NewPaymentService(paymentGateway, orderGateway, publisher)
	orderSvc := service.NewOrderService(orderGateway)
	catalogSvc := service.NewCatalogService(catalogGateway)
	clientSvc := service.NewClientService(clientGateway)

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("kafka", producer.Ping)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handlerhttp.NewRouter(handlerhttp.RouterDeps{
		Cart:     handlerhttp.NewCartHandler(cartSvc, log),
		Checkout: handlerhttp.NewCheckoutHandler(checkoutSvc, log),
		Payment:  handlerhttp.NewPaymentHandler(paymentSvc, log),
		Order:    handlerhttp.NewOrderHandler(orderSvc, log),
		Catalog:  handlerhttp.NewCatalogHandler(catalogGateway, notificationGateway, catalogSvc, log),
		Client:   handlerhttp.NewClientHandler(clientSvc, log),
		Health:   healthHandler,
		Logger:   log,
		CORS:     corsConfig,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:             cfg,
		log:             log,
		server:          server,
		redisClient:     redisClient,
		producer:        producer,
		pool:            pool,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run serves HTTP until the listener fails or Shutdown is called.
func (a *App) Run() error {
	a.log.Info("dashboard listening",
		slog.String("addr", a.server.Addr),
		slog.String("environment", a.cfg.Environment),
		slog.String("checkout_policy", a.cfg.CheckoutPolicy),
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes every dependency.
func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info("shutting down")

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("http shutdown failed", slog.String("error", err.Error()))
	}
	if err := a.producer.Close(); err != nil {
		a.log.Error("kafka producer close failed", slog.String("error", err.Error()))
	}
	if err := a.redisClient.Close(); err != nil {
		a.log.Error("redis close failed", slog.String("error", err.Error()))
	}
	a.pool.Close()

	if err := a.tracingShutdown(ctx); err != nil {
		a.log.Error("tracing shutdown failed", slog.String("error", err.Error()))
	}
	return nil
}
