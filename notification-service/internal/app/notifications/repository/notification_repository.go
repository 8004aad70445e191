package repository

import (
	"context"
	"errors"
	"time"

	"newsdesk/notification-service/internal/app/notifications/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository создает новый репозиторий уведомлений
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create создает новое уведомление
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	result := r.db.WithContext(ctx).Create(notification)
	return result.Error
}

// GetByID получает уведомление по ID
func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notification entity.Notification
	result := r.db.WithContext(ctx).First(&notification, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, result.Error
	}

	return &notification, nil
}

// GetAll получает все уведомления
func (r *notificationRepository) GetAll(ctx context.Context) ([]entity.Notification, error) {
	var notifications []entity.Notification
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&notifications)

	if result.Error != nil {
		return nil, result.Error
	}

	return notifications, nil
}

// GetUnsent возвращает pending уведомления для ретрая, самые старые первыми
func (r *notificationRepository) GetUnsent(ctx context.Context, maxAttempts int, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	result := r.db.WithContext(ctx).
		Where("status = ? AND attempts < ?", entity.NotificationStatusPending, maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications)

	if result.Error != nil {
		return nil, result.Error
	}

	return notifications, nil
}

// MarkSent фиксирует успешную отправку уведомления
func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  entity.NotificationStatusSent,
			"sent_at": now,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAttempt инкрементирует счётчик попыток одним UPDATE;
// при достижении лимита запись переводится в failed и выпадает из ретраев
func (r *notificationRepository) MarkAttempt(ctx context.Context, id uuid.UUID, maxAttempts int) error {
	result := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts": gorm.Expr("attempts + 1"),
			"status": gorm.Expr(
				"CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
				maxAttempts, entity.NotificationStatusFailed,
			),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
