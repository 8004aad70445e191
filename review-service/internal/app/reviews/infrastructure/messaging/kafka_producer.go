package messaging

import (
	"context"
	"fmt"
	"time"

	"newsdesk/pkg/delivery"
	"newsdesk/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer публикует события решений ревьюеров в топик review-status-events
// Сообщения ключуются по post_id, чтобы все решения по одному посту
// попадали в одну партицию и читались в порядке публикации
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
	policy delivery.Policy
}

// NewKafkaProducer создает новый Kafka producer для событий решений
func NewKafkaProducer(brokers []string, topic string, policy delivery.Policy) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Решения ревьюеров редкие и ценные, батчинг ни к чему
		BatchSize:    1,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &KafkaProducer{writer: writer, topic: topic, policy: policy}
}

// PublishMessage отправляет сообщение с повторами по политике доставки
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	start := time.Now()

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	err := p.policy.Retry(ctx, func(ctx context.Context) error {
		return p.writer.WriteMessages(ctx, message)
	})
	if err != nil {
		metrics.KafkaErrors.WithLabelValues("review-service", p.topic, "produce").Inc()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaMessageProduced("review-service", p.topic, time.Since(start))

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
