package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"newsdesk/pkg/events"
	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"
	"newsdesk/post-service/internal/app/posts/entity"
	"newsdesk/post-service/internal/app/posts/repository"
	"newsdesk/post-service/internal/app/posts/util"

	"github.com/google/uuid"
)

var (
	// ErrInvalidStatus - событие несёт статус вне закрытого набора.
	// Повторная доставка не поможет, сообщение уходит в dead-letter
	ErrInvalidStatus = errors.New("invalid review status in event")
)

// StatusApplier применяет решения ревьюеров к постам
// Идемпотентен: повторная доставка того же события не меняет состояние.
// Устаревшие события (decided_at старше watermark поста) отбрасываются,
// чтобы redelivery не откатила более свежий статус
type StatusApplier struct {
	postRepo repository.PostRepository
	cache    util.PostCache
	locks    *keyedLocks
}

// NewStatusApplier создает новый applier решений ревьюеров
// locks - тот же набор замков, что и у PostService, чтобы редактирование
// и применение решений для одного поста не шли параллельно.
// cache может быть nil (например, в тестах без Redis)
func NewStatusApplier(postRepo repository.PostRepository, cache util.PostCache, locks *keyedLocks) *StatusApplier {
	return &StatusApplier{
		postRepo: postRepo,
		cache:    cache,
		locks:    locks,
	}
}

// ApplyReviewDecision применяет одно событие решения ревьюера
// Возвращает nil и для успешного применения, и для отброшенных событий
// (устаревшее, неизвестный пост): это терминальные исходы, redelivery не нужна.
// Ненулевая ошибка означает транзиентный сбой - consumer повторит доставку
func (a *StatusApplier) ApplyReviewDecision(ctx context.Context, event *events.ReviewStatusEvent) error {
	status, err := entity.ParsePostStatus(event.Status)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, event.Status)
	}

	// События для одного поста применяются строго последовательно,
	// иначе две конкурентные доставки могут пройти проверку watermark
	// по одному и тому же устаревшему значению
	unlock := a.locks.lock(event.PostID)
	defer unlock()

	if _, err := a.postRepo.GetByID(ctx, event.PostID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			// Пост мог быть удалён после решения ревьюера - это не ошибка
			logger.Warn().
				Str("post_id", event.PostID.String()).
				Str("status", event.Status).
				Msg("Review decision for unknown post, dropping event")
			return nil
		}
		return fmt.Errorf("failed to look up post %s: %w", event.PostID, err)
	}

	applied, err := a.postRepo.ApplyStatus(ctx, event.PostID, status, event.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to apply status to post %s: %w", event.PostID, err)
	}

	if !applied {
		metrics.PostStatusStaleDiscarded.Inc()
		logger.Debug().
			Str("post_id", event.PostID.String()).
			Str("status", event.Status).
			Time("decided_at", event.DecidedAt).
			Msg("Discarded stale review decision")
		return nil
	}

	metrics.PostStatusApplied.WithLabelValues(string(status)).Inc()

	// Статус мог войти в published или выйти из него
	if a.cache != nil {
		if err := a.cache.InvalidatePublished(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to invalidate published posts cache")
		}
	}

	logger.Info().
		Str("post_id", event.PostID.String()).
		Str("status", event.Status).
		Time("decided_at", event.DecidedAt).
		Msg("Applied review decision to post")

	return nil
}

// keyedLocks - мьютекс на каждый postID
// Записи удаляются, когда последний владелец отпускает блокировку,
// чтобы карта не росла с числом когда-либо виденных постов
type keyedLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedLocks) lock(id uuid.UUID) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[uuid.UUID]*refLock)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &refLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
