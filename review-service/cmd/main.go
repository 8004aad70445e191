package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"newsdesk/pkg/delivery"
	"newsdesk/pkg/logger"
	"newsdesk/review-service/internal/app/reviews/config"
	"newsdesk/review-service/internal/app/reviews/handler"
	http2 "newsdesk/review-service/internal/app/reviews/infrastructure/http"
	"newsdesk/review-service/internal/app/reviews/infrastructure/messaging"
	"newsdesk/review-service/internal/app/reviews/repository"
	"newsdesk/review-service/internal/app/reviews/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("review-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "review-service", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	policy := delivery.Policy{
		MaxAttempts:    cfg.Delivery.MaxAttempts,
		InitialBackoff: cfg.Delivery.InitialBackoff,
		MaxBackoff:     cfg.Delivery.MaxBackoff,
	}

	producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, policy)
	defer producer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized review status producer")

	notificationClient := http2.NewNotificationClient(cfg.Notification.URL, cfg.Notification.Timeout)
	logger.Info().
		Str("url", cfg.Notification.URL).
		Msg("Initialized Notification Service client")

	reviewRepo := repository.NewReviewRepository(db)
	reviewService := service.NewReviewService(reviewRepo, producer, notificationClient)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	reviewHandler := handler.NewReviewHandler(reviewService)
	router := handler.SetupRoutes(reviewHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Review Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Review Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Review Service stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL используя pgx connection pool
func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
