package handler

import (
	"errors"
	"net/http"

	"newsdesk/post-service/internal/app/posts/entity"
	"newsdesk/post-service/internal/app/posts/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PostHandler обрабатывает HTTP запросы для постов с использованием Gin
type PostHandler struct {
	postService service.PostServiceInterface
	validator   *validator.Validate
}

// NewPostHandler создает новый обработчик постов
func NewPostHandler(postService service.PostServiceInterface) *PostHandler {
	return &PostHandler{
		postService: postService,
		validator:   validator.New(),
	}
}

// CreatePost обрабатывает POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req entity.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPosts обрабатывает GET /posts
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.postService.GetPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}

	c.JSON(http.StatusOK, entity.PostListResponse{Posts: posts, Total: len(posts)})
}

// GetPublishedPosts обрабатывает GET /posts/published
// Отдает посты из Redis кеша, если он актуален
func (h *PostHandler) GetPublishedPosts(c *gin.Context) {
	posts, err := h.postService.GetPublishedPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get published posts"})
		return
	}

	c.JSON(http.StatusOK, entity.PostListResponse{Posts: posts, Total: len(posts)})
}

// SearchPosts обрабатывает GET /posts/search
func (h *PostHandler) SearchPosts(c *gin.Context) {
	var req entity.SearchPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}

	posts, err := h.postService.SearchPosts(c.Request.Context(), req.Content, req.Category, req.Author)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search posts"})
		return
	}

	c.JSON(http.StatusOK, entity.PostListResponse{Posts: posts, Total: len(posts)})
}

// GetPost обрабатывает GET /posts/{id}
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost обрабатывает PUT /posts/{id}
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req entity.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), postID, &req)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost обрабатывает DELETE /posts/{id}
// Успех отдается только после завершения каскадного удаления:
// если Review Service недоступен, пост остается и клиент получает 502
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	authToken, _ := c.Get("auth_token")
	authTokenStr, _ := authToken.(string)

	if err := h.postService.DeletePost(c.Request.Context(), postID, authTokenStr); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		if errors.Is(err, service.ErrReviewPurgeFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete dependent reviews, post kept"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return "Validation failed on field '" + fieldErr.Field() + "' (" + fieldErr.Tag() + ")"
	}
	return "Validation failed"
}
