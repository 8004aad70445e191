package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

func RecordKafkaMessageProduced(service, topic string, duration time.Duration) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
	KafkaProduceDuration.WithLabelValues(service, topic).Observe(duration.Seconds())
}

func RecordKafkaMessageConsumed(service, topic, group string, processingDuration time.Duration) {
	KafkaMessagesConsumed.WithLabelValues(service, topic, group).Inc()
	KafkaConsumeDuration.WithLabelValues(service, topic).Observe(processingDuration.Seconds())
}

func RecordDeadLettered(service, topic, reason string) {
	KafkaDeadLettered.WithLabelValues(service, topic, reason).Inc()
}
