package repository

import (
	"context"
	"errors"

	"newsdesk/notification-service/internal/app/notifications/entity"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository определяет операции хранилища уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	GetAll(ctx context.Context) ([]entity.Notification, error)
	// GetUnsent возвращает pending уведомления с числом попыток меньше maxAttempts,
	// самые старые первыми, не больше limit штук
	GetUnsent(ctx context.Context, maxAttempts int, limit int) ([]entity.Notification, error)
	// MarkSent фиксирует успешную отправку
	MarkSent(ctx context.Context, id uuid.UUID) error
	// MarkAttempt инкрементирует счётчик попыток; при достижении maxAttempts
	// переводит запись в failed
	MarkAttempt(ctx context.Context, id uuid.UUID, maxAttempts int) error
}
