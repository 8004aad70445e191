package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/pkg/events"
	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"
	"newsdesk/review-service/internal/app/reviews/entity"
	"newsdesk/review-service/internal/app/reviews/infrastructure"
	"newsdesk/review-service/internal/app/reviews/repository"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidStatus  = errors.New("invalid review status")
)

// ReviewService обрабатывает бизнес-логику решений ревьюеров
// После фиксации решения в БД публикует событие в Kafka и best-effort
// отправляет уведомление автору через Notification Service
type ReviewService struct {
	reviewRepo         repository.ReviewRepository
	publisher          infrastructure.MessagePublisher
	notificationClient infrastructure.NotificationClient
}

// NewReviewService создает новый сервис решений с внедрением зависимостей
// notificationClient может быть nil, тогда уведомления не отправляются
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	publisher infrastructure.MessagePublisher,
	notificationClient infrastructure.NotificationClient,
) *ReviewService {
	return &ReviewService{
		reviewRepo:         reviewRepo,
		publisher:          publisher,
		notificationClient: notificationClient,
	}
}

// CreateReview фиксирует решение ревьюера по посту
// Порядок строгий: сначала durable запись в БД, только потом событие.
// Упавшая публикация не откатывает решение - оно уже принято
func (s *ReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	status, err := entity.ParseReviewStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	now := time.Now().UTC()
	review := &entity.Review{
		ID:         uuid.New(),
		PostID:     req.PostID,
		ReviewerID: req.ReviewerID,
		Status:     status,
		Comment:    req.Comment,
		ReviewedAt: now,
		CreatedAt:  now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewDecisions.WithLabelValues(string(status)).Inc()

	s.publishDecision(ctx, review)
	s.notifyAuthor(ctx, review, req.NotifyEmail)

	return review, nil
}

// GetReview получает решение по ID
func (s *ReviewService) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// GetReviews получает все решения
func (s *ReviewService) GetReviews(ctx context.Context) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// GetReviewsByPost получает все решения по посту
func (s *ReviewService) GetReviewsByPost(ctx context.Context, postID uuid.UUID) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews by post: %w", err)
	}

	return reviews, nil
}

// GetReviewsByStatus получает решения с указанным статусом
func (s *ReviewService) GetReviewsByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews by status: %w", err)
	}

	return reviews, nil
}

// UpdateReview пересматривает ранее зафиксированное решение
// Новое решение получает свежий reviewed_at и публикуется как новое событие,
// watermark на стороне post-service отбросит любые запоздавшие старые доставки
func (s *ReviewService) UpdateReview(ctx context.Context, id uuid.UUID, req *entity.UpdateReviewRequest) (*entity.Review, error) {
	status, err := entity.ParseReviewStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	review.Status = status
	review.Comment = req.Comment
	review.ReviewedAt = time.Now().UTC()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	metrics.ReviewDecisions.WithLabelValues(string(status)).Inc()

	s.publishDecision(ctx, review)

	return review, nil
}

// DeleteReview удаляет одно решение
func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

// DeleteReviewsForPost удаляет все решения по посту
// Вызывается post-service при каскадном удалении. Идемпотентно:
// повторный вызов удалит ноль строк и это тоже успех
func (s *ReviewService) DeleteReviewsForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	deleted, err := s.reviewRepo.DeleteByPostID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge reviews for post: %w", err)
	}

	metrics.ReviewsPurged.Add(float64(deleted))
	logger.Info().
		Str("post_id", postID.String()).
		Int64("deleted", deleted).
		Msg("Purged reviews for post")

	return deleted, nil
}

// publishDecision публикует событие решения в Kafka
// Best-effort: отказ Kafka логируется, но не отменяет решение
func (s *ReviewService) publishDecision(ctx context.Context, review *entity.Review) {
	event := events.NewReviewStatusEvent(review.PostID, string(review.Status), review.Comment, review.ReviewedAt)

	payload, err := events.Encode(event)
	if err != nil {
		logger.Error().
			Err(err).
			Str("review_id", review.ID.String()).
			Msg("Failed to encode review status event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, review.PostID.String(), payload); err != nil {
		logger.Error().
			Err(err).
			Str("review_id", review.ID.String()).
			Str("post_id", review.PostID.String()).
			Msg("Failed to publish review status event")
		return
	}

	logger.Info().
		Str("post_id", review.PostID.String()).
		Str("status", string(review.Status)).
		Msg("Published review status event")
}

// notifyAuthor отправляет уведомление автору поста, если указан адрес
func (s *ReviewService) notifyAuthor(ctx context.Context, review *entity.Review, email string) {
	if s.notificationClient == nil || email == "" {
		return
	}

	subject := fmt.Sprintf("Your post has been %s", review.Status)
	body := fmt.Sprintf("Post %s received review decision: %s.", review.PostID, review.Status)
	if review.Comment != "" {
		body += " Reviewer comment: " + review.Comment
	}

	if err := s.notificationClient.SendNotification(ctx, email, subject, body); err != nil {
		logger.Warn().
			Err(err).
			Str("post_id", review.PostID.String()).
			Msg("Failed to send review notification")
	}
}
