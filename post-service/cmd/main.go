package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"newsdesk/pkg/delivery"
	"newsdesk/pkg/logger"
	"newsdesk/post-service/internal/app/posts/config"
	"newsdesk/post-service/internal/app/posts/handler"
	http2 "newsdesk/post-service/internal/app/posts/infrastructure/http"
	"newsdesk/post-service/internal/app/posts/infrastructure/messaging"
	"newsdesk/post-service/internal/app/posts/processor"
	"newsdesk/post-service/internal/app/posts/repository"
	"newsdesk/post-service/internal/app/posts/service"
	"newsdesk/post-service/internal/app/posts/util"
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
	logger.Init("post-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "post-service", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	redisClient, err := util.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")

	policy := delivery.Policy{
		MaxAttempts:    cfg.Delivery.MaxAttempts,
		InitialBackoff: cfg.Delivery.InitialBackoff,
		MaxBackoff:     cfg.Delivery.MaxBackoff,
	}

	dlqProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.DLQTopic)
	defer dlqProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.DLQTopic).
		Msg("Initialized dead-letter producer")

	reviewClient := http2.NewReviewClient(cfg.ReviewService.URL, cfg.ReviewService.Timeout, policy)
	logger.Info().
		Str("url", cfg.ReviewService.URL).
		Msg("Initialized Review Service client")

	postRepo := repository.NewPostRepository(db)
	postLocks := service.NewPostLocks()

	postService := service.NewPostService(postRepo, reviewClient, redisClient, postLocks)
	statusApplier := service.NewStatusApplier(postRepo, redisClient, postLocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		statusApplier,
		dlqProducer,
		cfg.Kafka.DLQTopic,
		policy,
	)
	consumer.Start(ctx)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	postHandler := handler.NewPostHandler(postService)
	router := handler.SetupRoutes(postHandler, authMiddleware)

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
			Msg("Starting Post Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Post Service...")

	consumer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Post Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
