package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Retry    RetryConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8084)
}

type DatabaseConfig struct {
	Host     string // Хост PostgreSQL
	Port     string // Порт PostgreSQL
	User     string // Имя пользователя БД
	Password string // Пароль БД
	DBName   string // Имя базы данных
	SSLMode  string // Режим SSL (disable/require/verify-full)
}

type SMTPConfig struct {
	Host     string // Хост SMTP сервера
	Port     string // Порт SMTP сервера
	Username string // Логин SMTP (пусто = без аутентификации)
	Password string // Пароль SMTP
	From     string // Адрес отправителя
}

type RetryConfig struct {
	Schedule    string // Cron расписание повторной отправки
	MaxAttempts int    // Максимум попыток отправки одного уведомления
	BatchSize   int    // Сколько неотправленных уведомлений забирать за проход
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8084"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "notification_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnv("SMTP_PORT", "1025"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@newsdesk.local"),
		},
		Retry: RetryConfig{
			Schedule:    getEnv("RETRY_SCHEDULE", "@every 1m"),
			MaxAttempts: getEnvInt("RETRY_MAX_ATTEMPTS", 5),
			BatchSize:   getEnvInt("RETRY_BATCH_SIZE", 50),
		},
	}, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *SMTPConfig) Address() string {
	return c.Host + ":" + c.Port
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
