package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventTypeReviewDecided - тип события решения ревьюера
// Топик review-status-events может переиспользоваться, поэтому
// consumer обязан проверять тип перед десериализацией полей
const EventTypeReviewDecided = "REVIEW_DECIDED"

var (
	// ErrUnknownSchema - payload объявляет чужой тип события
	ErrUnknownSchema = errors.New("unknown event schema")
	// ErrMalformed - payload не парсится или не содержит обязательных полей
	ErrMalformed = errors.New("malformed event payload")
)

// ReviewStatusEvent представляет решение ревьюера по посту для Kafka
// Неизменяемый факт: создаётся один раз при записи решения,
// доставляется consumer-у как минимум один раз (возможны дубликаты)
type ReviewStatusEvent struct {
	EventType       string    `json:"event_type"`
	PostID          uuid.UUID `json:"post_id"`
	Status          string    `json:"status"`
	ReviewerComment string    `json:"reviewer_comment,omitempty"`
	DecidedAt       time.Time `json:"decided_at"`
}

// NewReviewStatusEvent создает событие с нормализованным временем (UTC)
func NewReviewStatusEvent(postID uuid.UUID, status, comment string, decidedAt time.Time) ReviewStatusEvent {
	return ReviewStatusEvent{
		EventType:       EventTypeReviewDecided,
		PostID:          postID,
		Status:          status,
		ReviewerComment: comment,
		DecidedAt:       decidedAt.UTC(),
	}
}

// Encode сериализует событие в JSON для отправки в Kafka
func Encode(event ReviewStatusEvent) ([]byte, error) {
	if event.EventType == "" {
		event.EventType = EventTypeReviewDecided
	}
	event.DecidedAt = event.DecidedAt.UTC()

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal review status event: %w", err)
	}

	return data, nil
}

// Decode разбирает payload из Kafka и проверяет схему
// Возвращает ErrUnknownSchema для чужих типов событий и
// ErrMalformed для битых payload - оба не подлежат повторной обработке
func Decode(data []byte) (*ReviewStatusEvent, error) {
	var event ReviewStatusEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if event.EventType != EventTypeReviewDecided {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, event.EventType)
	}

	if event.PostID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing post_id", ErrMalformed)
	}
	if event.Status == "" {
		return nil, fmt.Errorf("%w: missing status", ErrMalformed)
	}
	if event.DecidedAt.IsZero() {
		return nil, fmt.Errorf("%w: missing decided_at", ErrMalformed)
	}

	event.DecidedAt = event.DecidedAt.UTC()

	return &event, nil
}
