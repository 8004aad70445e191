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

	"newsdesk/notification-service/internal/app/notifications/config"
	"newsdesk/notification-service/internal/app/notifications/handler"
	"newsdesk/notification-service/internal/app/notifications/infrastructure/smtp"
	"newsdesk/notification-service/internal/app/notifications/processor"
	"newsdesk/notification-service/internal/app/notifications/repository"
	"newsdesk/notification-service/internal/app/notifications/service"
	"newsdesk/pkg/logger"
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
	logger.Init("notification-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "notification-service", logLevel); err != nil {
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

	emailSender := smtp.NewSender(cfg.SMTP)
	logger.Info().
		Str("smtp", cfg.SMTP.Address()).
		Str("from", cfg.SMTP.From).
		Msg("Initialized SMTP sender")

	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(
		notificationRepo,
		emailSender,
		cfg.Retry.MaxAttempts,
		cfg.Retry.BatchSize,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cronScheduler := processor.NewCronScheduler(notificationService)
	if err := cronScheduler.Start(ctx, cfg.Retry.Schedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start retry scheduler")
	}

	notificationHandler := handler.NewNotificationHandler(notificationService)
	router := handler.SetupRoutes(notificationHandler)

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
			Msg("Starting Notification Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Notification Service...")

	cronScheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Notification Service stopped gracefully")
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
					sqlDB.SetMaxOpenConns(10)
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
