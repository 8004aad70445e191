package repository

import (
	"context"
	"errors"

	"newsdesk/review-service/internal/app/reviews/entity"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewRepository определяет операции хранилища решений ревьюеров
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	GetAll(ctx context.Context) ([]entity.Review, error)
	GetByPostID(ctx context.Context, postID uuid.UUID) ([]entity.Review, error)
	GetByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByPostID удаляет все ревью поста и возвращает число удалённых строк.
	// Ноль строк - не ошибка: purge пустого набора идемпотентен
	DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
}
