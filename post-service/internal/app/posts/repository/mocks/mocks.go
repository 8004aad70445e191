package mocks

import (
	"context"
	"sync"
	"time"

	"newsdesk/post-service/internal/app/posts/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository мок для PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) GetAll(ctx context.Context) ([]entity.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) GetByStatus(ctx context.Context, status entity.PostStatus) ([]entity.Post, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, content, category, author string) ([]entity.Post, error) {
	args := m.Called(ctx, content, category, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ApplyStatus(ctx context.Context, id uuid.UUID, status entity.PostStatus, decidedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, status, decidedAt)
	return args.Bool(0), args.Error(1)
}

// MockReviewServiceClient мок для ReviewServiceClient
type MockReviewServiceClient struct {
	mock.Mock
	AuthToken string
}

func (m *MockReviewServiceClient) SetAuthToken(token string) {
	m.AuthToken = token
}

func (m *MockReviewServiceClient) PurgeReviewsForPost(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// MockMessagePublisher мок для MessagePublisher
// Накапливает отправленные сообщения для проверок в тестах
type MockMessagePublisher struct {
	mock.Mock
	mu       sync.Mutex
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.Messages = append(m.Messages, value)
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPostCache мок для PostCache
type MockPostCache struct {
	mock.Mock
}

func (m *MockPostCache) SetPublished(ctx context.Context, posts []entity.Post, ttl time.Duration) error {
	args := m.Called(ctx, posts, ttl)
	return args.Error(0)
}

func (m *MockPostCache) GetPublished(ctx context.Context) ([]entity.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostCache) InvalidatePublished(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPostCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
