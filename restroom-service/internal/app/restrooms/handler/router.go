package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imnotmomo/dokku/pkg/logger"
	"github.com/imnotmomo/dokku/pkg/metrics"
)

func SetupRoutes(restroomHandler *RestroomHandler, reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("restroom-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "restroom-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	bathrooms := router.Group("/v1/bathrooms")
	{
		// Список отзывов публичный
		bathrooms.GET("/:id/reviews", reviewHandler.ListReviews)

		authed := bathrooms.Group("")
		authed.Use(authMiddleware.Authenticate())
		{
			authed.POST("", restroomHandler.Submit)
			authed.GET("/nearby", restroomHandler.Nearby)
			authed.GET("/:id", restroomHandler.Details)
			authed.PATCH("/:id", restroomHandler.Propose)
			authed.POST("/:id/visit", restroomHandler.Visit)
			authed.POST("/:id/reviews", reviewHandler.AddReview)
		}
	}

	return router
}
