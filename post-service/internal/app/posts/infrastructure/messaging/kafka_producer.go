package messaging

import (
	"context"
	"fmt"
	"time"

	"newsdesk/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer в post-service пишет только в dead-letter топик:
// туда уходят события, которые consumer не смог обработать
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Dead-letter сообщения редкие, батчинг не нужен
		BatchSize:    1,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	start := time.Now()

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.KafkaErrors.WithLabelValues("post-service", p.topic, "produce").Inc()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaMessageProduced("post-service", p.topic, time.Since(start))

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
