package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/notification-service/internal/app/notifications/entity"
	"newsdesk/notification-service/internal/app/notifications/infrastructure"
	"newsdesk/notification-service/internal/app/notifications/repository"
	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService хранит уведомления и отвечает за их доставку
// Запись сохраняется до первой попытки отправки: упавший SMTP
// не теряет письмо, его дошлёт периодический ретрай
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	emailSender      infrastructure.EmailSender
	maxAttempts      int
	batchSize        int
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	emailSender infrastructure.EmailSender,
	maxAttempts int,
	batchSize int,
) *NotificationService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if batchSize < 1 {
		batchSize = 50
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		emailSender:      emailSender,
		maxAttempts:      maxAttempts,
		batchSize:        batchSize,
	}
}

// CreateNotification сохраняет уведомление и сразу пытается его отправить
// Неудачная отправка не является ошибкой запроса: уведомление остаётся
// pending и будет дослано по расписанию
func (s *NotificationService) CreateNotification(ctx context.Context, req *entity.CreateNotificationRequest) (*entity.Notification, error) {
	notification := &entity.Notification{
		ID:        uuid.New(),
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
		Status:    entity.NotificationStatusPending,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	s.attemptDelivery(ctx, notification)

	return notification, nil
}

// GetNotification получает уведомление по ID
func (s *NotificationService) GetNotification(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return notification, nil
}

// GetNotifications получает все уведомления
func (s *NotificationService) GetNotifications(ctx context.Context) ([]entity.Notification, error) {
	notifications, err := s.notificationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, nil
}

// ResendPending дошлёт накопившиеся pending уведомления
// Вызывается cron-джобой; ошибка одной записи не прерывает проход
func (s *NotificationService) ResendPending(ctx context.Context) (int, error) {
	pending, err := s.notificationRepo.GetUnsent(ctx, s.maxAttempts, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to load unsent notifications: %w", err)
	}

	sent := 0
	for i := range pending {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		if s.attemptDelivery(ctx, &pending[i]) {
			sent++
		}
	}

	return sent, nil
}

// attemptDelivery делает одну попытку отправки и фиксирует исход в БД
func (s *NotificationService) attemptDelivery(ctx context.Context, notification *entity.Notification) bool {
	if err := s.emailSender.Send(notification.Recipient, notification.Subject, notification.Body); err != nil {
		logger.Warn().
			Err(err).
			Str("notification_id", notification.ID.String()).
			Str("recipient", notification.Recipient).
			Int("attempts", notification.Attempts+1).
			Msg("Failed to send notification")

		if markErr := s.notificationRepo.MarkAttempt(ctx, notification.ID, s.maxAttempts); markErr != nil {
			logger.Error().
				Err(markErr).
				Str("notification_id", notification.ID.String()).
				Msg("Failed to record delivery attempt")
		}
		metrics.NotificationsSent.WithLabelValues("failed").Inc()

		notification.Attempts++
		if notification.Attempts >= s.maxAttempts {
			notification.Status = entity.NotificationStatusFailed
		}
		return false
	}

	if err := s.notificationRepo.MarkSent(ctx, notification.ID); err != nil {
		logger.Error().
			Err(err).
			Str("notification_id", notification.ID.String()).
			Msg("Failed to mark notification as sent")
	}

	metrics.NotificationsSent.WithLabelValues("sent").Inc()

	now := time.Now().UTC()
	notification.Status = entity.NotificationStatusSent
	notification.SentAt = &now

	logger.Info().
		Str("notification_id", notification.ID.String()).
		Str("recipient", notification.Recipient).
		Msg("Notification sent")

	return true
}
