package handler

import (
	"errors"
	"net/http"

	"newsdesk/notification-service/internal/app/notifications/entity"
	"newsdesk/notification-service/internal/app/notifications/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NotificationHandler обрабатывает HTTP запросы для уведомлений
type NotificationHandler struct {
	notificationService service.NotificationServiceInterface
	validator           *validator.Validate
}

// NewNotificationHandler создает новый обработчик уведомлений
func NewNotificationHandler(notificationService service.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// CreateNotification обрабатывает POST /notifications
// Уведомление принимается, как только сохранено: доставка может
// произойти позже через ретрай
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req entity.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	notification, err := h.notificationService.CreateNotification(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// GetNotifications обрабатывает GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetNotifications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, entity.NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
	})
}

// GetNotification обрабатывает GET /notifications/{id}
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	notification, err := h.notificationService.GetNotification(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notification"})
		return
	}

	c.JSON(http.StatusOK, notification)
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return "Validation failed on field '" + fieldErr.Field() + "' (" + fieldErr.Tag() + ")"
	}
	return "Validation failed"
}
