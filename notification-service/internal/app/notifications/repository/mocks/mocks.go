package mocks

import (
	"context"

	"newsdesk/notification-service/internal/app/notifications/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository мок для NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetAll(ctx context.Context) ([]entity.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetUnsent(ctx context.Context, maxAttempts int, limit int) ([]entity.Notification, error) {
	args := m.Called(ctx, maxAttempts, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAttempt(ctx context.Context, id uuid.UUID, maxAttempts int) error {
	args := m.Called(ctx, id, maxAttempts)
	return args.Error(0)
}

// MockEmailSender мок для EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(recipient, subject, body string) error {
	args := m.Called(recipient, subject, body)
	return args.Error(0)
}
