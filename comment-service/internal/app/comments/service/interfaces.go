package service

import (
	"context"

	"newsdesk/comment-service/internal/app/comments/entity"
)

// CommentServiceInterface определяет бизнес-операции Comment Service
type CommentServiceInterface interface {
	CreateComment(ctx context.Context, author string, req *entity.CreateCommentRequest) (*entity.Comment, error)
	GetComment(ctx context.Context, id string) (*entity.Comment, error)
	GetCommentsByPost(ctx context.Context, postID string) ([]entity.Comment, error)
	UpdateComment(ctx context.Context, id string, author string, req *entity.UpdateCommentRequest) (*entity.Comment, error)
	DeleteComment(ctx context.Context, id string, author string) error
}
