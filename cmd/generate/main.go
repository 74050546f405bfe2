package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/recuerdalab/memoryprompts-backend/internal/clients/openai"
	"github.com/recuerdalab/memoryprompts-backend/internal/db"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/services"
)

// One-shot batch generation: same pipeline as the API endpoint, but in bulk
// write-mode so the full record list is built before anything is stored.
func main() {
	_ = godotenv.Load()

	category := flag.String("category", "", "category to generate prompts for (required)")
	language := flag.String("language", "es", "prompt language: es or en")
	amount := flag.Int("amount", 5, "number of prompts to request")
	subcategories := flag.String("subcategories", "", "comma-separated subcategory names")
	dryRun := flag.Bool("dry-run", false, "build records without writing to the store")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if strings.TrimSpace(*category) == "" {
		fmt.Fprintln(os.Stderr, "a category is required: -category \"Name\"")
		os.Exit(1)
	}

	openaiClient, err := openai.NewClient(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI client init failed: %v\n", err)
		os.Exit(1)
	}

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Postgres init failed: %v\n", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Postgres auto migration failed: %v\n", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	categoryRepo := repos.NewCategoryRepo(thePG, log)
	promptRepo := repos.NewPromptRepo(thePG, log)
	keywordService := services.NewKeywordService(log, openaiClient)
	categoryService := services.NewCategoryService(thePG, log, categoryRepo)
	generationService := services.NewGenerationService(thePG, log, openaiClient, keywordService, categoryService, promptRepo)

	var subs []string
	for _, s := range strings.Split(*subcategories, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			subs = append(subs, trimmed)
		}
	}

	result, err := generationService.Generate(context.Background(), services.GenerateRequest{
		Category:      *category,
		Language:      *language,
		Amount:        *amount,
		Subcategories: subs,
		Mode:          services.WriteModeBulk,
		DryRun:        *dryRun,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	if result.DryRun {
		log.Info("Dry run: records built but not stored", "count", len(result.Prompts))
		for _, prompt := range result.Prompts {
			fmt.Println(prompt.Text)
		}
		return
	}

	log.Info("Bulk generation finished", "inserted", len(result.Prompts), "failed", result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}
