package handler

import (
	"errors"
	"net/http"

	"newsdesk/comment-service/internal/app/comments/entity"
	"newsdesk/comment-service/internal/app/comments/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CommentHandler обрабатывает HTTP запросы для комментариев
type CommentHandler struct {
	commentService service.CommentServiceInterface
	validator      *validator.Validate
}

// NewCommentHandler создает новый обработчик комментариев
func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

// CreateComment обрабатывает POST /comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req entity.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	author := c.GetString("user_id")

	comment, err := h.commentService.CreateComment(c.Request.Context(), author, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPost обрабатывает GET /comments/post/{postId}
func (h *CommentHandler) GetCommentsByPost(c *gin.Context) {
	postID := c.Param("postId")

	comments, err := h.commentService.GetCommentsByPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comments"})
		return
	}

	c.JSON(http.StatusOK, entity.CommentListResponse{Comments: comments, Total: len(comments)})
}

// GetComment обрабатывает GET /comments/{id}
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.commentService.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comment"})
		return
	}

	c.JSON(http.StatusOK, comment)
}

// UpdateComment обрабатывает PUT /comments/{id}
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req entity.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	author := c.GetString("user_id")

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.Param("id"), author, &req)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit this comment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment обрабатывает DELETE /comments/{id}
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	author := c.GetString("user_id")

	if err := h.commentService.DeleteComment(c.Request.Context(), c.Param("id"), author); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete this comment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return "Validation failed on field '" + fieldErr.Field() + "' (" + fieldErr.Tag() + ")"
	}
	return "Validation failed"
}
