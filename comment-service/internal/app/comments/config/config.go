package config

import (
	"os"
)

// Config содержит все настройки приложения Comment Service
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	JWT     JWTConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// MongoDBConfig - настройки подключения к MongoDB
// Комментарии читателей хранятся в document-ориентированной базе:
// схема свободная, выборки только по post_id
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig - настройки для проверки JWT токенов
type JWTConfig struct {
	Secret string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8083"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "comment_service"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
	}, nil
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
