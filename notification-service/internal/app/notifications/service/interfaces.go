package service

import (
	"context"

	"newsdesk/notification-service/internal/app/notifications/entity"

	"github.com/google/uuid"
)

// NotificationServiceInterface определяет бизнес-операции Notification Service
type NotificationServiceInterface interface {
	CreateNotification(ctx context.Context, req *entity.CreateNotificationRequest) (*entity.Notification, error)
	GetNotification(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	GetNotifications(ctx context.Context) ([]entity.Notification, error)
	// ResendPending повторно отправляет накопившиеся pending уведомления,
	// возвращает число успешно отправленных
	ResendPending(ctx context.Context) (int, error)
}
