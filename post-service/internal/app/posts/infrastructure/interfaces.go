package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// В post-service используется для dead-letter топика
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// ReviewServiceClient интерфейс удалённого вызова Review Service
// Используется координатором каскадного удаления постов
type ReviewServiceClient interface {
	SetAuthToken(token string)
	PurgeReviewsForPost(ctx context.Context, postID uuid.UUID) error
}
