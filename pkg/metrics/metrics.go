package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="post-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты для микросервисов: от 1ms до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed - полученные сообщения
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaConsumeDuration - время обработки сообщения
var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// KafkaDeadLettered - сообщения, отправленные в dead-letter топик
// Рост этого счётчика - повод для алерта: события теряют обработку
var KafkaDeadLettered = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_dead_lettered_total",
		Help: "Total number of messages routed to a dead-letter topic",
	},
	[]string{"service", "topic", "reason"}, // reason: malformed, exhausted
)

// =============================================================================
// Business Метрики (специфичные для Newsdesk)
// =============================================================================

// --- Post Service ---

// PostStatusApplied - применённые изменения статуса поста из событий ревью
var PostStatusApplied = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "post_status_applied_total",
		Help: "Total number of review decisions applied to posts",
	},
	[]string{"status"},
)

// PostStatusStaleDiscarded - отброшенные устаревшие события
// (decided_at старше watermark поста)
var PostStatusStaleDiscarded = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "post_status_stale_discarded_total",
		Help: "Total number of stale review events discarded by the watermark check",
	},
)

// PostCascadeDeletes - каскадные удаления постов
var PostCascadeDeletes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "post_cascade_deletes_total",
		Help: "Total number of cascading post deletions",
	},
	[]string{"outcome"}, // completed, aborted, not_found
)

// --- Review Service ---

// ReviewDecisions - записанные решения ревьюеров
var ReviewDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_decisions_total",
		Help: "Total number of review decisions recorded",
	},
	[]string{"status"},
)

// ReviewsPurged - удалённые ревью при каскадном удалении поста
var ReviewsPurged = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reviews_purged_total",
		Help: "Total number of reviews purged by post deletion",
	},
)

// --- Notification Service ---

// NotificationsSent - отправленные уведомления
var NotificationsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of notifications sent",
	},
	[]string{"status"}, // sent, failed
)

// --- Comment Service ---

// CommentsCreated - созданные комментарии
var CommentsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total number of comments created",
	},
)
