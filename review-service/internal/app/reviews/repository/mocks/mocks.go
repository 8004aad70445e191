package mocks

import (
	"context"
	"sync"

	"newsdesk/review-service/internal/app/reviews/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetAll(ctx context.Context) ([]entity.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByPostID(ctx context.Context, postID uuid.UUID) ([]entity.Review, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
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

// MockNotificationClient мок для NotificationClient
type MockNotificationClient struct {
	mock.Mock
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}
