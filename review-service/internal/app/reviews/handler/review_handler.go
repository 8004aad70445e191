package handler

import (
	"errors"
	"net/http"

	"newsdesk/review-service/internal/app/reviews/entity"
	"newsdesk/review-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ReviewHandler обрабатывает HTTP запросы для решений ревьюеров
type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

// NewReviewHandler создает новый обработчик решений
func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// CreateReview обрабатывает POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review status"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews обрабатывает GET /reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{Reviews: reviews, Total: len(reviews)})
}

// GetReview обрабатывает GET /reviews/{id}
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// GetReviewsByPost обрабатывает GET /reviews/post/{postId}
func (h *ReviewHandler) GetReviewsByPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	reviews, err := h.reviewService.GetReviewsByPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{Reviews: reviews, Total: len(reviews)})
}

// GetReviewsByStatus обрабатывает GET /reviews/status/{status}
func (h *ReviewHandler) GetReviewsByStatus(c *gin.Context) {
	status, err := entity.ParseReviewStatus(c.Param("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review status"})
		return
	}

	reviews, err := h.reviewService.GetReviewsByStatus(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{Reviews: reviews, Total: len(reviews)})
}

// UpdateReview обрабатывает PUT /reviews/{id}
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var req entity.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, &req)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review status"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview обрабатывает DELETE /reviews/{id}
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// PurgeReviewsForPost обрабатывает DELETE /reviews/post/{postId}
// Вызывается post-service при каскадном удалении поста.
// Идемпотентен: отсутствие ревью у поста - тоже успешный purge
func (h *ReviewHandler) PurgeReviewsForPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if _, err := h.reviewService.DeleteReviewsForPost(c.Request.Context(), postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purge reviews"})
		return
	}

	c.Status(http.StatusNoContent)
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return "Validation failed on field '" + fieldErr.Field() + "' (" + fieldErr.Tag() + ")"
	}
	return "Validation failed"
}
