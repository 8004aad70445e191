package handler

import (
	"net/http"

	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Notification Service
// Сервис внутренний, запросы приходят только от других сервисов,
// поэтому JWT middleware здесь нет
func SetupRoutes(notificationHandler *NotificationHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("notification-service"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "notification-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	notifications := router.Group("/notifications")
	{
		notifications.POST("", notificationHandler.CreateNotification)
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.GET("/:id", notificationHandler.GetNotification)
	}

	return router
}
