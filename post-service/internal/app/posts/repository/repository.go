package repository

import (
	"context"
	"errors"
	"time"

	"newsdesk/post-service/internal/app/posts/entity"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound = errors.New("post not found")
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	GetAll(ctx context.Context) ([]entity.Post, error)
	GetByStatus(ctx context.Context, status entity.PostStatus) ([]entity.Post, error)
	Search(ctx context.Context, content, category, author string) ([]entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ApplyStatus атомарно применяет решение ревьюера с проверкой watermark:
	// статус обновляется только если decidedAt не старше status_decided_at поста.
	// Возвращает false без ошибки, если событие устарело и было отброшено
	ApplyStatus(ctx context.Context, id uuid.UUID, status entity.PostStatus, decidedAt time.Time) (bool, error)
}
