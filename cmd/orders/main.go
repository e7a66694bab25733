package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chai-gali/chai-gali-orders-service/internal/clients"
	"github.com/chai-gali/chai-gali-orders-service/internal/config"
	"github.com/chai-gali/chai-gali-orders-service/internal/events"
	"github.com/chai-gali/chai-gali-orders-service/internal/handlers"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/metrics"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
	"github.com/chai-gali/chai-gali-orders-service/internal/repository"
	"github.com/chai-gali/chai-gali-orders-service/internal/server"
	"github.com/chai-gali/chai-gali-orders-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLoggerV2("orders-service")
	defer func() { _ = logging.Base().Sync() }()

	logging.Infof("Starting orders-service on port %d", cfg.Server.Port)

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
	}
	defer db.Close()

	orderRepo := repository.NewPostgresOrderRepository(db, logger)

	redisClient := repository.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	orderCache := repository.NewRedisOrderCache(redisClient, cfg.Redis.TTL)
	cartStore := repository.NewRedisCartStore(redisClient, cfg.Redis.CartTTL)

	notificationClient := clients.NewHTTPNotificationClient(cfg.NotificationService, logger)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	catalog := pricing.DefaultCatalog()
	calculator := pricing.NewCalculator(catalog, cfg.Pricing.ExpressSurcharge)
	calculator.Subscribe(m.ObserveBreakdown)

	orderService := service.NewOrderService(
		calculator,
		orderRepo,
		orderRepo,
		orderCache,
		eventPublisher,
		notificationClient,
		m,
		cfg,
	)
	cartService := service.NewCartService(cartStore, m)

	h := handlers.NewHandlers(orderService, cartService, cfg,
		handlers.ReadinessCheck{Name: "postgres", Check: orderRepo.Ping},
		handlers.ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":                    cfg.Server.Port,
			"express_surcharge":       cfg.Pricing.ExpressSurcharge,
			"strict_field_validation": cfg.Features.StrictFieldValidation,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	var menuConsumer *events.MenuConsumer
	if cfg.Features.EnableMenuUpdates {
		menuConsumer = events.NewMenuConsumer(cfg.Kafka, catalog, logger)
		go func() {
			if err := menuConsumer.Start(context.Background()); err != nil {
				logger.Error("Menu consumer failed", logging.Fields{"error": err.Error()})
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if menuConsumer != nil {
		menuConsumer.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := repository.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}

	logging.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
