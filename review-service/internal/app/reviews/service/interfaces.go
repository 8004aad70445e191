package service

import (
	"context"

	"newsdesk/review-service/internal/app/reviews/entity"

	"github.com/google/uuid"
)

// ReviewServiceInterface определяет бизнес-операции Review Service
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	GetReviews(ctx context.Context) ([]entity.Review, error)
	GetReviewsByPost(ctx context.Context, postID uuid.UUID) ([]entity.Review, error)
	GetReviewsByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, req *entity.UpdateReviewRequest) (*entity.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	DeleteReviewsForPost(ctx context.Context, postID uuid.UUID) (int64, error)
}
