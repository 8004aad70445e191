package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/pkg/logger"
	"newsdesk/post-service/internal/app/posts/entity"
	"newsdesk/post-service/internal/app/posts/infrastructure"
	"newsdesk/post-service/internal/app/posts/repository"
	"newsdesk/post-service/internal/app/posts/util"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrPostNotFound      = errors.New("post not found")
	ErrReviewPurgeFailed = errors.New("failed to purge dependent reviews")
)

const publishedCacheTTL = time.Hour

// PostService обрабатывает бизнес-логику постов
// Координирует работу репозитория, Redis кеша и Review Service
type PostService struct {
	postRepo     repository.PostRepository
	reviewClient infrastructure.ReviewServiceClient
	cache        util.PostCache
	locks        *keyedLocks
}

// NewPostService создает новый сервис постов с внедрением зависимостей
// locks разделяется со StatusApplier: обычное редактирование и применение
// решений ревьюеров сериализуются по одному и тому же замку поста
func NewPostService(
	postRepo repository.PostRepository,
	reviewClient infrastructure.ReviewServiceClient,
	cache util.PostCache,
	locks *keyedLocks,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		reviewClient: reviewClient,
		cache:        cache,
		locks:        locks,
	}
}

// NewPostLocks создает общий набор пер-постовых замков
func NewPostLocks() *keyedLocks {
	return &keyedLocks{}
}

// CreatePost создает новый пост в статусе draft
func (s *PostService) CreatePost(ctx context.Context, req *entity.CreatePostRequest) (*entity.Post, error) {
	post := &entity.Post{
		ID:       uuid.New(),
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Status:   entity.PostStatusDraft,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetPost получает пост по ID
func (s *PostService) GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// GetPosts получает все посты
func (s *PostService) GetPosts(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	return posts, nil
}

// GetPublishedPosts получает опубликованные посты с кешированием в Redis
// Сначала проверяет кеш, если нет - загружает из БД и кеширует
func (s *PostService) GetPublishedPosts(ctx context.Context) ([]entity.Post, error) {
	if s.cache != nil {
		posts, err := s.cache.GetPublished(ctx)
		if err == nil && len(posts) > 0 {
			return posts, nil
		}
	}

	posts, err := s.postRepo.GetByStatus(ctx, entity.PostStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to get published posts: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetPublished(ctx, posts, publishedCacheTTL); err != nil {
			// Данные получены из БД, проблемы с кешем не критичны
			logger.Warn().Err(err).Msg("Failed to cache published posts")
		}
	}

	return posts, nil
}

// SearchPosts ищет посты по контенту, категории и автору
func (s *PostService) SearchPosts(ctx context.Context, content, category, author string) ([]entity.Post, error) {
	posts, err := s.postRepo.Search(ctx, content, category, author)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	return posts, nil
}

// UpdatePost обновляет редактируемые поля поста
// Держит замок поста, чтобы не пересекаться с применением решений ревьюеров
func (s *PostService) UpdatePost(ctx context.Context, id uuid.UUID, req *entity.UpdatePostRequest) (*entity.Post, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Author != "" {
		post.Author = req.Author
	}
	if req.Category != "" {
		post.Category = req.Category
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.invalidateCache(ctx)

	return post, nil
}

func (s *PostService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublished(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate published posts cache")
	}
}
