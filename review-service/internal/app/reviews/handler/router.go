package handler

import (
	"net/http"

	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Review Service с использованием Gin
// Все операции с решениями требуют JWT токен: ревью - внутренняя кухня редакции
func SetupRoutes(reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("review-service"))

	// Health check endpoint - публичный, без аутентификации
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "review-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reviews := router.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate())
	{
		reviews.POST("", reviewHandler.CreateReview)
		reviews.GET("", reviewHandler.GetReviews)
		reviews.GET("/status/:status", reviewHandler.GetReviewsByStatus)
		reviews.GET("/post/:postId", reviewHandler.GetReviewsByPost)
		reviews.DELETE("/post/:postId", reviewHandler.PurgeReviewsForPost)
		reviews.GET("/:id", reviewHandler.GetReview)
		reviews.PUT("/:id", reviewHandler.UpdateReview)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
	}

	return router
}
