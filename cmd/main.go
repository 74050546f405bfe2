package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/recuerdalab/memoryprompts-backend/internal/clients/openai"
	"github.com/recuerdalab/memoryprompts-backend/internal/db"
	"github.com/recuerdalab/memoryprompts-backend/internal/handlers"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/middleware"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/server"
	"github.com/recuerdalab/memoryprompts-backend/internal/services"
	"github.com/recuerdalab/memoryprompts-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	adminAPIKey := utils.GetEnv("ADMIN_API_KEY", "", log)
	port := utils.GetEnv("PORT", "5001", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	categoryRepo := repos.NewCategoryRepo(thePG, log)
	promptRepo := repos.NewPromptRepo(thePG, log)
	eventRepo := repos.NewEventRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	openaiClient, err := openai.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	keywordService := services.NewKeywordService(log, openaiClient)
	categoryService := services.NewCategoryService(thePG, log, categoryRepo)
	generationService := services.NewGenerationService(thePG, log, openaiClient, keywordService, categoryService, promptRepo)
	promptService := services.NewPromptService(thePG, log, promptRepo)
	eventService := services.NewEventService(thePG, log, eventRepo)
	adminService := services.NewAdminService(thePG, log, promptRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	promptHandler := handlers.NewPromptHandler(promptService, generationService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	eventHandler := handlers.NewEventHandler(eventService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Middleware
	adminAuth := middleware.NewAdminAuthMiddleware(log, adminAPIKey)
	if adminAPIKey == "" {
		log.Warn("ADMIN_API_KEY is not set; admin routes will reject every request")
	}

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		PromptHandler:   promptHandler,
		CategoryHandler: categoryHandler,
		EventHandler:    eventHandler,
		AdminHandler:    adminHandler,
		AdminAuth:       adminAuth,
	})

	log.Info("API running", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
