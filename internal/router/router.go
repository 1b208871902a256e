package router

import (
	"log"

	"wikitok/internal/config"
	"wikitok/internal/handlers"
	"wikitok/internal/metrics"
	"wikitok/internal/middleware"
	"wikitok/internal/services"
	"wikitok/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const statsCacheSize = 500

// RegisterRoutes wires services, handlers and the API routes onto the
// engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, collector *metrics.Collector) {
	cache, err := utils.NewCache(statsCacheSize)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	articleService := services.NewArticleService(db)
	interactionService := services.NewInteractionService(db, cache, cfg.StatsCacheTTL)

	authHandler := handlers.NewAuthHandler(db, cfg)
	articleHandler := handlers.NewArticleHandler(articleService, interactionService)
	userHandler := handlers.NewUserHandler(interactionService)

	r.GET("/metrics", gin.WrapH(collector.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)

		api.GET("/auth/login", authHandler.Login)
		api.GET("/auth/callback", authHandler.Callback)
		api.GET("/auth/me", authHandler.Me) // answers 401 {"user": null} itself
		api.POST("/auth/logout", authHandler.Logout)
	}

	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/articles", articleHandler.Save)
		authorized.POST("/articles/:id/like", articleHandler.Like)
		authorized.DELETE("/articles/:id/like", articleHandler.Unlike)
		authorized.POST("/articles/:id/view", articleHandler.View)
		authorized.GET("/articles/liked", articleHandler.Liked)
		authorized.GET("/articles/history", articleHandler.History)

		authorized.GET("/user/stats", userHandler.Stats)
	}
}
