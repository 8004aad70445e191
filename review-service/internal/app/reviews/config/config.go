package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Review Service
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Kafka        KafkaConfig
	JWT          JWTConfig
	Notification NotificationConfig
	Delivery     DeliveryConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Review Service хранит решения ревьюеров в отдельной базе
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig - настройки Kafka для публикации событий решений
// Каждое зафиксированное решение ревьюера уходит в топик review-status-events
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// JWTConfig - настройки для проверки JWT токенов
type JWTConfig struct {
	Secret string
}

// NotificationConfig - настройки клиента Notification Service
// Уведомление автору поста отправляется best-effort после решения
type NotificationConfig struct {
	URL     string
	Timeout time.Duration
}

// DeliveryConfig - параметры повторов публикации событий и HTTP вызовов
type DeliveryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	maxAttempts, err := strconv.Atoi(getEnv("DELIVERY_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_MAX_ATTEMPTS value: %w", err)
	}

	initialBackoff, err := time.ParseDuration(getEnv("DELIVERY_INITIAL_BACKOFF", "100ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_INITIAL_BACKOFF value: %w", err)
	}

	maxBackoff, err := time.ParseDuration(getEnv("DELIVERY_MAX_BACKOFF", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_MAX_BACKOFF value: %w", err)
	}

	notificationTimeout, err := time.ParseDuration(getEnv("NOTIFICATION_SERVICE_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_SERVICE_TIMEOUT value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "reviews"),
			Password: getEnv("DB_PASSWORD", "reviews"),
			DBName:   getEnv("DB_NAME", "review_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "review-status-events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Notification: NotificationConfig{
			URL:     getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8084"),
			Timeout: notificationTimeout,
		},
		Delivery: DeliveryConfig{
			MaxAttempts:    maxAttempts,
			InitialBackoff: initialBackoff,
			MaxBackoff:     maxBackoff,
		},
	}, nil
}

// ConnString возвращает строку подключения к PostgreSQL для pgx
func (c *DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
