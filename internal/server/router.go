package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/recuerdalab/memoryprompts-backend/internal/handlers"
	"github.com/recuerdalab/memoryprompts-backend/internal/middleware"
)

type RouterConfig struct {
	PromptHandler   *handlers.PromptHandler
	CategoryHandler *handlers.CategoryHandler
	EventHandler    *handlers.EventHandler
	AdminHandler    *handlers.AdminHandler
	AdminAuth       *middleware.AdminAuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Admin-Api-Key"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/prompts", cfg.PromptHandler.GetRandom)
		api.GET("/prompts/search", cfg.PromptHandler.Search)
		api.POST("/prompts/generate", cfg.PromptHandler.Generate)
		api.POST("/prompts/:id/event", cfg.EventHandler.Record)
		api.GET("/categories", cfg.CategoryHandler.List)
	}

	admin := router.Group("/api/admin")
	admin.Use(cfg.AdminAuth.RequireAdmin())
	{
		admin.GET("/prompts", cfg.AdminHandler.ListAll)
		admin.GET("/prompts/summary", cfg.AdminHandler.Summary)
	}

	return router
}
