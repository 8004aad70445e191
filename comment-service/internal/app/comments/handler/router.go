package handler

import (
	"net/http"

	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Comment Service с использованием Gin
// Чтение комментариев публичное, мутации требуют JWT токен
func SetupRoutes(commentHandler *CommentHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("comment-service"))

	// Health check endpoint - публичный, без аутентификации
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "comment-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	comments := router.Group("/comments")
	{
		// Чтение - публичное
		comments.GET("/post/:postId", commentHandler.GetCommentsByPost)
		comments.GET("/:id", commentHandler.GetComment)

		// Мутации - только для аутентифицированных пользователей
		authorized := comments.Group("")
		authorized.Use(authMiddleware.Authenticate())
		{
			authorized.POST("", commentHandler.CreateComment)
			authorized.PUT("/:id", commentHandler.UpdateComment)
			authorized.DELETE("/:id", commentHandler.DeleteComment)
		}
	}

	return router
}
