package handler

import (
	"net/http"
	"time"

	"newsdesk/pkg/logger"
	"newsdesk/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Post Service с использованием Gin
// Чтение постов публичное, мутации требуют JWT токен редактора
func SetupRoutes(postHandler *PostHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("post-service"))

	// Фронтенд редакции ходит с другого origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint - публичный, без аутентификации
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "post-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	posts := router.Group("/posts")
	{
		// Чтение - публичное
		posts.GET("/", postHandler.GetPosts)
		posts.GET("/published", postHandler.GetPublishedPosts)
		posts.GET("/search", postHandler.SearchPosts)
		posts.GET("/:id", postHandler.GetPost)

		// Мутации - только для редакторов
		authorized := posts.Group("")
		authorized.Use(authMiddleware.Authenticate())
		{
			authorized.POST("/", postHandler.CreatePost)
			authorized.PUT("/:id", postHandler.UpdatePost)
			authorized.DELETE("/:id", postHandler.DeletePost)
		}
	}

	return router
}
