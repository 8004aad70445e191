package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsdesk/comment-service/internal/app/comments/config"
	"newsdesk/comment-service/internal/app/comments/handler"
	"newsdesk/comment-service/internal/app/comments/repository"
	"newsdesk/comment-service/internal/app/comments/service"
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
	logger.Init("comment-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "comment-service", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	mongoClient, err := connectMongoDB(context.Background(), cfg.MongoDB.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	commentRepo := repository.NewCommentRepository(db)
	commentService := service.NewCommentService(commentRepo)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	commentHandler := handler.NewCommentHandler(commentService)
	router := handler.SetupRoutes(commentHandler, authMiddleware)

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
			Msg("Starting Comment Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Comment Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Comment Service stopped gracefully")
}

// connectMongoDB устанавливает соединение с MongoDB с повторными попытками
func connectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetConnectTimeout(10 * time.Second)

	var client *mongo.Client
	var err error
	for i := 0; i < 10; i++ {
		client, err = mongo.Connect(ctx, clientOptions)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
