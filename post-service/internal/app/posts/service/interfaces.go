package service

import (
	"context"

	"newsdesk/pkg/events"
	"newsdesk/post-service/internal/app/posts/entity"

	"github.com/google/uuid"
)

// PostServiceInterface используется handler-ами и для мокирования в тестах
type PostServiceInterface interface {
	CreatePost(ctx context.Context, req *entity.CreatePostRequest) (*entity.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	GetPosts(ctx context.Context) ([]entity.Post, error)
	GetPublishedPosts(ctx context.Context) ([]entity.Post, error)
	SearchPosts(ctx context.Context, content, category, author string) ([]entity.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req *entity.UpdatePostRequest) (*entity.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID, authToken string) error
}

// ReviewStatusApplier применяет решение ревьюера к посту
// Вызывается Kafka consumer-ом для каждой доставки, включая повторные
type ReviewStatusApplier interface {
	ApplyReviewDecision(ctx context.Context, event *events.ReviewStatusEvent) error
}
