package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Category{},
		&types.Prompt{},
		&types.PromptCategory{},
		&types.Event{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// fakeAI scripts the model client: generation calls run at high temperature,
// keyword calls at low temperature, so the fake can answer each differently.
type fakeAI struct {
	generateFn func(system, user string) (string, error)
	keywordFn  func(system, user string) (string, error)
}

func (f *fakeAI) ChatText(ctx context.Context, system string, user string, temperature float64) (string, error) {
	if temperature >= 0.5 {
		if f.generateFn == nil {
			return "", nil
		}
		return f.generateFn(system, user)
	}
	if f.keywordFn == nil {
		return "[]", nil
	}
	return f.keywordFn(system, user)
}

func (f *fakeAI) Model() string { return "test-model" }
