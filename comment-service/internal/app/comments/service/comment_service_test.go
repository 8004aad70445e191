package service

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"newsdesk/comment-service/internal/app/comments/entity"
	"newsdesk/comment-service/internal/app/comments/repository"
	"newsdesk/comment-service/internal/app/comments/repository/mocks"
	"newsdesk/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("comment-service-test", "error", io.Discard)
	os.Exit(m.Run())
}

func TestCreateComment_AuthorTakenFromToken(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	postID := uuid.New().String()
	req := &entity.CreateCommentRequest{PostID: postID, Content: "Отличная статья"}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Comment) bool {
		return c.PostID == postID && c.Author == "reader-42" && c.Content == "Отличная статья"
	})).Return(nil)

	comment, err := svc.CreateComment(context.Background(), "reader-42", req)

	require.NoError(t, err)
	assert.Equal(t, "reader-42", comment.Author)
	mockRepo.AssertExpectations(t)
}

func TestCreateComment_RepositoryError(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable"))

	_, err := svc.CreateComment(context.Background(), "reader-42", &entity.CreateCommentRequest{
		PostID:  uuid.New().String(),
		Content: "text",
	})

	assert.Error(t, err)
}

func TestGetComment_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, "deadbeefdeadbeefdeadbeef").
		Return(nil, repository.ErrCommentNotFound)

	_, err := svc.GetComment(context.Background(), "deadbeefdeadbeefdeadbeef")

	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestGetCommentsByPost(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	postID := uuid.New().String()
	stored := []entity.Comment{
		{ID: primitive.NewObjectID(), PostID: postID, Author: "a", Content: "first"},
		{ID: primitive.NewObjectID(), PostID: postID, Author: "b", Content: "second"},
	}
	mockRepo.On("GetByPostID", mock.Anything, postID).Return(stored, nil)

	comments, err := svc.GetCommentsByPost(context.Background(), postID)

	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestUpdateComment_OnlyAuthorCanEdit(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	id := primitive.NewObjectID()
	stored := &entity.Comment{ID: id, PostID: uuid.New().String(), Author: "owner", Content: "original"}
	mockRepo.On("GetByID", mock.Anything, id.Hex()).Return(stored, nil)

	_, err := svc.UpdateComment(context.Background(), id.Hex(), "someone-else", &entity.UpdateCommentRequest{
		Content: "hijacked",
	})

	assert.ErrorIs(t, err, ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateComment_Success(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	id := primitive.NewObjectID()
	stored := &entity.Comment{ID: id, PostID: uuid.New().String(), Author: "owner", Content: "original"}
	mockRepo.On("GetByID", mock.Anything, id.Hex()).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Comment) bool {
		return c.ID == id && c.Content == "edited"
	})).Return(nil)

	comment, err := svc.UpdateComment(context.Background(), id.Hex(), "owner", &entity.UpdateCommentRequest{
		Content: "edited",
	})

	require.NoError(t, err)
	assert.Equal(t, "edited", comment.Content)
	mockRepo.AssertExpectations(t)
}

func TestUpdateComment_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	id := primitive.NewObjectID()
	mockRepo.On("GetByID", mock.Anything, id.Hex()).Return(nil, repository.ErrCommentNotFound)

	_, err := svc.UpdateComment(context.Background(), id.Hex(), "owner", &entity.UpdateCommentRequest{
		Content: "edited",
	})

	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteComment_OnlyAuthorCanDelete(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	id := primitive.NewObjectID()
	stored := &entity.Comment{ID: id, Author: "owner"}
	mockRepo.On("GetByID", mock.Anything, id.Hex()).Return(stored, nil)

	err := svc.DeleteComment(context.Background(), id.Hex(), "someone-else")

	assert.ErrorIs(t, err, ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteComment_Success(t *testing.T) {
	mockRepo := new(mocks.MockCommentRepository)
	svc := NewCommentService(mockRepo)

	id := primitive.NewObjectID()
	stored := &entity.Comment{ID: id, Author: "owner"}
	mockRepo.On("GetByID", mock.Anything, id.Hex()).Return(stored, nil)
	mockRepo.On("Delete", mock.Anything, id.Hex()).Return(nil)

	err := svc.DeleteComment(context.Background(), id.Hex(), "owner")

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
