package delivery

import (
	"context"
	"fmt"
	"time"
)

// Policy описывает общую политику доставки для Kafka и межсервисных HTTP вызовов:
// сколько раз повторять операцию и с какой задержкой.
// Consumer после исчерпания попыток отправляет сообщение в dead-letter топик,
// producer и HTTP клиенты возвращают последнюю ошибку вызывающему коду
type Policy struct {
	MaxAttempts    int           // Максимум попыток, включая первую
	InitialBackoff time.Duration // Задержка перед второй попыткой
	MaxBackoff     time.Duration // Потолок экспоненциального роста задержки
}

// DefaultPolicy - политика по умолчанию для всех путей доставки
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    5,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

// BackoffFor возвращает задержку перед попыткой attempt (нумерация с 1)
// Перед первой попыткой задержки нет, дальше экспоненциальный рост до MaxBackoff
func (p Policy) BackoffFor(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	backoff := p.InitialBackoff
	for i := 2; i < attempt; i++ {
		backoff *= 2
		if backoff >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}

	if backoff > p.MaxBackoff {
		return p.MaxBackoff
	}

	return backoff
}

// Retry выполняет op до первого успеха, но не более MaxAttempts раз
// Между попытками ждет BackoffFor, прерывается при отмене контекста
func (p Policy) Retry(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if backoff := p.BackoffFor(attempt); backoff > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			}
		}

		if err := op(ctx); err != nil {
			lastErr = err
			continue
		}

		return nil
	}

	return fmt.Errorf("exhausted %d attempts: %w", attempts, lastErr)
}
