package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"
	"newsdesk/post-service/internal/app/posts/repository"

	"github.com/google/uuid"
)

// deletionState - этапы каскадного удаления поста
type deletionState string

const (
	deletionRequested           deletionState = "requested"
	deletionRemotePurgeInFlight deletionState = "remote_purge_in_flight"
	deletionRemotePurgeOk       deletionState = "remote_purge_ok"
	deletionRemotePurgeFailed   deletionState = "remote_purge_failed"
	deletionLocalDeleteInFlight deletionState = "local_delete_in_flight"
	deletionCompleted           deletionState = "completed"
	deletionAborted             deletionState = "aborted"
)

// deletionIntent - состояние одной операции удаления
// Живет только в памяти на время вызова DeletePost и никому не видим снаружи
type deletionIntent struct {
	postID      uuid.UUID
	initiatedAt time.Time
	state       deletionState
}

func newDeletionIntent(postID uuid.UUID) *deletionIntent {
	return &deletionIntent{
		postID:      postID,
		initiatedAt: time.Now(),
		state:       deletionRequested,
	}
}

func (i *deletionIntent) transition(next deletionState) {
	logger.Debug().
		Str("post_id", i.postID.String()).
		Str("from", string(i.state)).
		Str("to", string(next)).
		Msg("Post deletion state transition")
	i.state = next
}

// DeletePost выполняет каскадное удаление поста:
// 1. Проверяет, что пост существует локально
// 2. Синхронно удаляет зависимые ревью в Review Service
// 3. Удаляет локальную запись поста
// Если удалённый purge не удался, локальный пост не трогаем и возвращаем
// ErrReviewPurgeFailed - вызывающий может повторить операцию целиком.
// Обратный порядок оставил бы осиротевшие ревью без поста
func (s *PostService) DeletePost(ctx context.Context, id uuid.UUID, authToken string) error {
	intent := newDeletionIntent(id)

	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			metrics.PostCascadeDeletes.WithLabelValues("not_found").Inc()
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to check post existence: %w", err)
	}

	// Последняя точка отмены: после начала удалённого purge операция
	// идет до конца - удалённую сторону нельзя "передумать"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("deletion cancelled before remote purge: %w", err)
	}
	opCtx := context.WithoutCancel(ctx)

	s.reviewClient.SetAuthToken(authToken)

	intent.transition(deletionRemotePurgeInFlight)
	if err := s.reviewClient.PurgeReviewsForPost(opCtx, id); err != nil {
		intent.transition(deletionRemotePurgeFailed)
		intent.transition(deletionAborted)
		metrics.PostCascadeDeletes.WithLabelValues("aborted").Inc()
		logger.Error().
			Err(err).
			Str("post_id", id.String()).
			Msg("Aborting post deletion: review purge failed, local post kept")
		return fmt.Errorf("%w: %v", ErrReviewPurgeFailed, err)
	}
	intent.transition(deletionRemotePurgeOk)

	intent.transition(deletionLocalDeleteInFlight)
	if err := s.postRepo.Delete(opCtx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			// Пост удалили конкурентно - итоговое состояние совпадает с целевым
			intent.transition(deletionCompleted)
			metrics.PostCascadeDeletes.WithLabelValues("completed").Inc()
			return nil
		}
		// Известное окно несогласованности: ревью уже удалены, пост остался.
		// Автоматической компенсации нет - purge необратим, поэтому
		// громко логируем для алертинга и отдаем ошибку вызывающему
		logger.Error().
			Err(err).
			Str("post_id", id.String()).
			Msg("INCONSISTENCY: reviews purged but local post deletion failed")
		return fmt.Errorf("failed to delete post after review purge: %w", err)
	}
	intent.transition(deletionCompleted)
	metrics.PostCascadeDeletes.WithLabelValues("completed").Inc()

	s.invalidateCache(opCtx)

	logger.Info().
		Str("post_id", id.String()).
		Dur("took", time.Since(intent.initiatedAt)).
		Msg("Post deleted with dependent reviews")

	return nil
}
