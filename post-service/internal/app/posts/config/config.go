package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Kafka         KafkaConfig
	Redis         RedisConfig
	JWT           JWTConfig
	ReviewService ReviewServiceConfig
	Delivery      DeliveryConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8081)
}

type DatabaseConfig struct {
	Host     string // Хост PostgreSQL
	Port     string // Порт PostgreSQL
	User     string // Имя пользователя БД
	Password string // Пароль БД
	DBName   string // Имя базы данных
	SSLMode  string // Режим SSL (disable/require/verify-full)
}

type KafkaConfig struct {
	Brokers  []string // Список брокеров Kafka (формат: host:port)
	Topic    string   // Топик с событиями решений ревьюеров
	GroupID  string   // Consumer group для status applier
	DLQTopic string   // Dead-letter топик для необрабатываемых событий
	MinBytes int      // Минимум байт для fetch запроса
	MaxBytes int      // Максимум байт для fetch запроса
}

type RedisConfig struct {
	Addr     string // Адрес Redis (host:port)
	Password string // Пароль Redis
	DB       int    // Номер базы Redis
}

type JWTConfig struct {
	Secret string // Секретный ключ для проверки JWT токенов редакторов
}

type ReviewServiceConfig struct {
	URL     string        // URL Review Service для каскадного удаления ревью
	Timeout time.Duration // Таймаут удалённого вызова purge
}

type DeliveryConfig struct {
	MaxAttempts    int           // Максимум попыток применения события / удалённого вызова
	InitialBackoff time.Duration // Начальная задержка между попытками
	MaxBackoff     time.Duration // Потолок задержки между попытками
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "post_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "review-status-events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "post-service"),
			DLQTopic: getEnv("KAFKA_DLQ_TOPIC", "review-status-events-dlq"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		ReviewService: ReviewServiceConfig{
			URL:     getEnv("REVIEW_SERVICE_URL", "http://localhost:8082"),
			Timeout: time.Duration(getEnvInt("REVIEW_SERVICE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Delivery: DeliveryConfig{
			MaxAttempts:    getEnvInt("DELIVERY_MAX_ATTEMPTS", 5),
			InitialBackoff: time.Duration(getEnvInt("DELIVERY_INITIAL_BACKOFF_MS", 100)) * time.Millisecond,
			MaxBackoff:     time.Duration(getEnvInt("DELIVERY_MAX_BACKOFF_MS", 5000)) * time.Millisecond,
		},
	}, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
