package service

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/comment-service/internal/app/comments/entity"
	"newsdesk/comment-service/internal/app/comments/repository"
	"newsdesk/pkg/metrics"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCommentNotFound = errors.New("comment not found")
	ErrUnauthorized    = errors.New("unauthorized access to comment")
)

// CommentService обрабатывает бизнес-логику комментариев
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService создает новый сервис комментариев
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
	}
}

// CreateComment создает новый комментарий от имени автора из JWT
func (s *CommentService) CreateComment(ctx context.Context, author string, req *entity.CreateCommentRequest) (*entity.Comment, error) {
	comment := &entity.Comment{
		PostID:  req.PostID,
		Author:  author,
		Content: req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()

	return comment, nil
}

// GetComment получает комментарий по ID
func (s *CommentService) GetComment(ctx context.Context, id string) (*entity.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// GetCommentsByPost получает все комментарии поста
func (s *CommentService) GetCommentsByPost(ctx context.Context, postID string) ([]entity.Comment, error) {
	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

// UpdateComment редактирует комментарий с проверкой авторства
func (s *CommentService) UpdateComment(ctx context.Context, id string, author string, req *entity.UpdateCommentRequest) (*entity.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	// Редактировать комментарий может только его автор
	if comment.Author != author {
		return nil, ErrUnauthorized
	}

	comment.Content = req.Content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment удаляет комментарий с проверкой авторства
func (s *CommentService) DeleteComment(ctx context.Context, id string, author string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.Author != author {
		return ErrUnauthorized
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
