package util

import (
	"context"
	"time"

	"newsdesk/post-service/internal/app/posts/entity"
)

// PostCache интерфейс для кеширования списка опубликованных постов
// Используется для dependency injection и упрощения тестирования
type PostCache interface {
	SetPublished(ctx context.Context, posts []entity.Post, ttl time.Duration) error
	GetPublished(ctx context.Context) ([]entity.Post, error)
	InvalidatePublished(ctx context.Context) error
	Close() error
}
