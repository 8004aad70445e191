package repository

import (
	"context"
	"errors"

	"newsdesk/comment-service/internal/app/comments/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentRepository определяет операции хранилища комментариев
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id string) error
}
