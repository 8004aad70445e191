package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsdesk/pkg/logger"
	"newsdesk/review-service/internal/app/reviews/entity"
	"newsdesk/review-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("review-service-test", "error", io.Discard)
	m.Run()
}

// MockReviewService мок для ReviewServiceInterface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) GetReviews(ctx context.Context) ([]entity.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewService) GetReviewsByPost(ctx context.Context, postID uuid.UUID) ([]entity.Review, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewService) GetReviewsByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id uuid.UUID, req *entity.UpdateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) DeleteReviewsForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func setupTestRouter(mockService *MockReviewService) *gin.Engine {
	reviewHandler := NewReviewHandler(mockService)
	authMiddleware := NewAuthMiddleware(testJWTSecret)
	return SetupRoutes(reviewHandler, authMiddleware)
}

func makeReviewerToken(t *testing.T) string {
	t.Helper()
	claims := JWTClaims{
		UserID: uuid.NewString(),
		Email:  "reviewer@example.com",
		Role:   "reviewer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// ===================== CreateReview Tests =====================

func TestCreateReview_Success(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	postID := uuid.New()
	created := &entity.Review{ID: uuid.New(), PostID: postID, Status: entity.ReviewStatusApproved}
	mockService.On("CreateReview", mock.Anything, mock.AnythingOfType("*entity.CreateReviewRequest")).Return(created, nil)

	body, _ := json.Marshal(entity.CreateReviewRequest{
		PostID:     postID,
		ReviewerID: uuid.New(),
		Status:     "approved",
		Comment:    "looks good",
	})

	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReview_InvalidStatusRejected(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	body, _ := json.Marshal(entity.CreateReviewRequest{
		PostID:     uuid.New(),
		ReviewerID: uuid.New(),
		Status:     "escalated",
	})

	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestCreateReview_Unauthorized(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ===================== PurgeReviewsForPost Tests =====================

func TestPurgeReviewsForPost_Returns204(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	postID := uuid.New()
	mockService.On("DeleteReviewsForPost", mock.Anything, postID).Return(int64(2), nil)

	req := httptest.NewRequest(http.MethodDelete, "/reviews/post/"+postID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestPurgeReviewsForPost_ZeroRowsStill204(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	postID := uuid.New()
	mockService.On("DeleteReviewsForPost", mock.Anything, postID).Return(int64(0), nil)

	req := httptest.NewRequest(http.MethodDelete, "/reviews/post/"+postID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Идемпотентность: нечего удалять - всё равно успех
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPurgeReviewsForPost_InvalidPostID(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	req := httptest.NewRequest(http.MethodDelete, "/reviews/post/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== GetReviews Tests =====================

func TestGetReviewsByPost_Success(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	postID := uuid.New()
	reviews := []entity.Review{{ID: uuid.New(), PostID: postID, Status: entity.ReviewStatusApproved}}
	mockService.On("GetReviewsByPost", mock.Anything, postID).Return(reviews, nil)

	req := httptest.NewRequest(http.MethodGet, "/reviews/post/"+postID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ReviewListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestGetReviewsByStatus_InvalidStatus(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/reviews/status/escalated", nil)
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReview_NotFound(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupTestRouter(mockService)

	reviewID := uuid.New()
	mockService.On("GetReview", mock.Anything, reviewID).Return(nil, service.ErrReviewNotFound)

	req := httptest.NewRequest(http.MethodGet, "/reviews/"+reviewID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+makeReviewerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
