package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"

	"github.com/recuerdalab/memoryprompts-backend/internal/db"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

type seedPrompt struct {
	text       string
	categories []string
}

// Seeds the starter category tree and a few prompts. Safe to run twice:
// categories connect-or-create and prompts are skipped when their text
// already exists.
func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

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

	ctx := context.Background()
	categoryRepo := repos.NewCategoryRepo(thePG, log)
	promptRepo := repos.NewPromptRepo(thePG, log)

	infancia, err := categoryRepo.ConnectOrCreate(ctx, nil, "Infancia", nil)
	if err != nil {
		log.Fatal("Seeding categories failed", "error", err)
	}
	for _, child := range []string{"Escuela", "Juegos"} {
		if _, err := categoryRepo.ConnectOrCreate(ctx, nil, child, &infancia.ID); err != nil {
			log.Fatal("Seeding categories failed", "name", child, "error", err)
		}
	}
	if _, err := categoryRepo.ConnectOrCreate(ctx, nil, "Familia", nil); err != nil {
		log.Fatal("Seeding categories failed", "name", "Familia", "error", err)
	}

	seeds := []seedPrompt{
		{text: "¿Cómo era la calle donde vivías cuando eras niño?", categories: []string{"Infancia"}},
		{text: "¿Qué juegos solías jugar en la escuela?", categories: []string{"Escuela", "Juegos"}},
		{text: "¿Qué recuerdo especial tienes con tu familia?", categories: []string{"Familia"}},
	}

	emptyKeywords, _ := json.Marshal([]string{})
	for _, seed := range seeds {
		var count int64
		if err := thePG.WithContext(ctx).Model(&types.Prompt{}).Where("text = ?", seed.text).Count(&count).Error; err != nil {
			log.Fatal("Seed lookup failed", "error", err)
		}
		if count > 0 {
			continue
		}

		prompt := &types.Prompt{
			ID:       uuid.New(),
			Text:     seed.text,
			Language: "es",
			Keywords: datatypes.JSON(emptyKeywords),
			Source:   "seed",
		}
		for _, name := range seed.categories {
			category, err := categoryRepo.ConnectOrCreate(ctx, nil, name, nil)
			if err != nil {
				log.Fatal("Seed category resolution failed", "name", name, "error", err)
			}
			prompt.Categories = append(prompt.Categories, &types.PromptCategory{
				ID:         uuid.New(),
				PromptID:   prompt.ID,
				CategoryID: category.ID,
			})
		}
		if _, err := promptRepo.Create(ctx, nil, prompt); err != nil {
			log.Fatal("Seed prompt insert failed", "text", seed.text, "error", err)
		}
	}

	log.Info("Seed data created")
}
