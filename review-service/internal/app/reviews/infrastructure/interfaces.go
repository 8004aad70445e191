package infrastructure

import "context"

// MessagePublisher определяет интерфейс для публикации событий решений
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// NotificationClient определяет интерфейс клиента Notification Service
// Доставка уведомлений best-effort: отказ не влияет на фиксацию решения
type NotificationClient interface {
	SendNotification(ctx context.Context, recipient, subject, body string) error
}
