package processor

import (
	"context"
	"errors"
	"time"

	"newsdesk/pkg/delivery"
	"newsdesk/pkg/events"
	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"
	"newsdesk/post-service/internal/app/posts/infrastructure"
	"newsdesk/post-service/internal/app/posts/service"

	"github.com/segmentio/kafka-go"
)

// KafkaConsumer читает события решений ревьюеров из топика review-status-events
// Семантика at-least-once: offset коммитится только после того, как событие
// обработано или надёжно сложено в dead-letter топик. Любой другой исход
// оставляет offset на месте, и брокер доставит сообщение повторно
type KafkaConsumer struct {
	reader      *kafka.Reader
	applier     service.ReviewStatusApplier
	dlqProducer infrastructure.MessagePublisher
	dlqTopic    string
	policy      delivery.Policy
	groupID     string
	stopChan    chan struct{}
	doneChan    chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer для post-service
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	applier service.ReviewStatusApplier,
	dlqProducer infrastructure.MessagePublisher,
	dlqTopic string,
	policy delivery.Policy,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: minBytes,
		MaxBytes: maxBytes,
		// Начинаем с самого старого незакоммиченного сообщения:
		// пропуск события - потеря решения ревьюера
		StartOffset:    kafka.FirstOffset,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:      reader,
		applier:     applier,
		dlqProducer: dlqProducer,
		dlqTopic:    dlqTopic,
		policy:      policy,
		groupID:     groupID,
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group", c.groupID).
		Msg("Starting review status consumer")

	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping review status consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Msg("Review status consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if errors.Is(err, context.DeadlineExceeded) {
					continue
				}

				logger.Error().Err(err).Msg("Error fetching message")
				metrics.KafkaErrors.WithLabelValues("post-service", c.reader.Config().Topic, "consume").Inc()
				time.Sleep(time.Second)
				continue
			}

			start := time.Now()
			if err := c.handleMessage(ctx, message); err != nil {
				// Не коммитим offset: сообщение будет доставлено повторно
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Error handling message, leaving offset uncommitted")
				continue
			}

			metrics.RecordKafkaMessageConsumed("post-service", c.reader.Config().Topic, c.groupID, time.Since(start))

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Error().Err(err).Msg("Error committing message")
			}
		}
	}
}

// handleMessage обрабатывает одно сообщение из Kafka
// Возвращает nil, когда offset можно коммитить: событие применено, отброшено
// или надёжно отправлено в dead-letter. Ошибка означает "доставить повторно"
func (c *KafkaConsumer) handleMessage(ctx context.Context, message kafka.Message) error {
	event, err := events.Decode(message.Value)
	if err != nil {
		// Битый payload или чужая схема - повторная доставка не поможет
		logger.Warn().
			Err(err).
			Int64("offset", message.Offset).
			Msg("Undecodable message, routing to dead-letter")
		return c.deadLetter(ctx, message, "malformed")
	}

	attempts := c.policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if backoff := c.policy.BackoffFor(attempt); backoff > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.applier.ApplyReviewDecision(ctx, event)
		if lastErr == nil {
			return nil
		}

		if errors.Is(lastErr, service.ErrInvalidStatus) {
			logger.Warn().
				Err(lastErr).
				Str("post_id", event.PostID.String()).
				Msg("Event with invalid status, routing to dead-letter")
			return c.deadLetter(ctx, message, "malformed")
		}

		logger.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Str("post_id", event.PostID.String()).
			Msg("Transient failure applying review decision, retrying")
	}

	// Попытки исчерпаны: убираем сообщение в dead-letter, чтобы не блокировать
	// партицию, но и не потерять решение ревьюера
	logger.Error().
		Err(lastErr).
		Str("post_id", event.PostID.String()).
		Int("attempts", attempts).
		Msg("Exhausted attempts applying review decision, routing to dead-letter")
	return c.deadLetter(ctx, message, "exhausted")
}

// deadLetter отправляет исходное сообщение в dead-letter топик
// При неудаче возвращает ошибку: offset не коммитится и брокер
// доставит сообщение повторно - событие не может просто исчезнуть
func (c *KafkaConsumer) deadLetter(ctx context.Context, message kafka.Message, reason string) error {
	if err := c.dlqProducer.PublishMessage(ctx, string(message.Key), message.Value); err != nil {
		return err
	}

	metrics.RecordDeadLettered("post-service", c.dlqTopic, reason)
	logger.Error().
		Str("reason", reason).
		Str("dlq_topic", c.dlqTopic).
		Int64("offset", message.Offset).
		Msg("Message routed to dead-letter topic")

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
