//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"newsdesk/comment-service/internal/app/comments/entity"
	"newsdesk/comment-service/internal/app/comments/handler"
	"newsdesk/comment-service/internal/app/comments/repository"
	"newsdesk/comment-service/internal/app/comments/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentsIntegrationTestSuite struct {
	suite.Suite
	client         *mongo.Client
	db             *mongo.Database
	router         *gin.Engine
	commentService *service.CommentService
	currentUserID  string
	testPostID     string
}

func TestCommentsIntegrationSuite(t *testing.T) {
	suite.Run(t, new(CommentsIntegrationTestSuite))
}

func (s *CommentsIntegrationTestSuite) SetupSuite() {
	mongoURI := getEnv("TEST_MONGODB_URI", "mongodb://localhost:27018")
	dbName := getEnv("TEST_MONGODB_DATABASE", "comments_test_db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	s.client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	s.Require().NoError(err)

	s.db = s.client.Database(dbName)

	commentRepo := repository.NewCommentRepository(s.db)
	s.commentService = service.NewCommentService(commentRepo)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	commentHandler := handler.NewCommentHandler(s.commentService)

	// Авторство подставляется из контекста: в тестах переключаем текущего пользователя
	authMiddleware := func(c *gin.Context) {
		c.Set("user_id", s.currentUserID)
		c.Next()
	}

	comments := s.router.Group("/comments")
	comments.POST("", authMiddleware, commentHandler.CreateComment)
	comments.GET("/post/:postId", commentHandler.GetCommentsByPost)
	comments.GET("/:id", commentHandler.GetComment)
	comments.PUT("/:id", authMiddleware, commentHandler.UpdateComment)
	comments.DELETE("/:id", authMiddleware, commentHandler.DeleteComment)
}

func (s *CommentsIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.db.Collection("comments").Drop(ctx)
	s.currentUserID = "reader-1"
	s.testPostID = uuid.New().String()
}

func (s *CommentsIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.client.Disconnect(ctx)
	}
}

func (s *CommentsIntegrationTestSuite) createComment(content string) entity.Comment {
	body, _ := json.Marshal(entity.CreateCommentRequest{PostID: s.testPostID, Content: content})
	req, _ := http.NewRequest(http.MethodPost, "/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusCreated, w.Code)

	var created entity.Comment
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func (s *CommentsIntegrationTestSuite) TestCreateComment_StoredWithAuthor() {
	created := s.createComment("Первый комментарий")

	s.Equal(s.currentUserID, created.Author)
	s.Equal(s.testPostID, created.PostID)
	s.False(created.ID.IsZero())

	ctx := context.Background()
	count, err := s.db.Collection("comments").CountDocuments(ctx, map[string]interface{}{"post_id": s.testPostID})
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *CommentsIntegrationTestSuite) TestGetCommentsByPost_OnlyRequestedPost() {
	s.createComment("к первому посту")
	s.createComment("ещё к первому посту")

	otherPostID := s.testPostID
	s.testPostID = uuid.New().String()
	s.createComment("к другому посту")
	s.testPostID = otherPostID

	req, _ := http.NewRequest(http.MethodGet, "/comments/post/"+s.testPostID, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var response entity.CommentListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(2, response.Total)
}

func (s *CommentsIntegrationTestSuite) TestUpdateComment_ByAuthor() {
	created := s.createComment("черновой текст")

	body, _ := json.Marshal(entity.UpdateCommentRequest{Content: "исправленный текст"})
	req, _ := http.NewRequest(http.MethodPut, "/comments/"+created.ID.Hex(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var updated entity.Comment
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.Equal("исправленный текст", updated.Content)
	s.True(updated.EditedAt.After(created.EditedAt) || updated.EditedAt.Equal(created.EditedAt))
}

func (s *CommentsIntegrationTestSuite) TestUpdateComment_ForbiddenForOtherUser() {
	created := s.createComment("чужой комментарий")

	s.currentUserID = "reader-2"

	body, _ := json.Marshal(entity.UpdateCommentRequest{Content: "попытка перезаписи"})
	req, _ := http.NewRequest(http.MethodPut, "/comments/"+created.ID.Hex(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *CommentsIntegrationTestSuite) TestDeleteComment_ForbiddenForOtherUser() {
	created := s.createComment("комментарий на удаление")

	s.currentUserID = "reader-2"

	req, _ := http.NewRequest(http.MethodDelete, "/comments/"+created.ID.Hex(), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusForbidden, w.Code)

	// Комментарий должен остаться
	req, _ = http.NewRequest(http.MethodGet, "/comments/"+created.ID.Hex(), nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
}

func (s *CommentsIntegrationTestSuite) TestDeleteComment_ByAuthor() {
	created := s.createComment("комментарий на удаление")

	req, _ := http.NewRequest(http.MethodDelete, "/comments/"+created.ID.Hex(), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/comments/"+created.ID.Hex(), nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusNotFound, w.Code)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
