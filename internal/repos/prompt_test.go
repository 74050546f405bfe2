package repos

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

func newPrompt(t *testing.T, text string, keywords []string, categories ...*types.Category) *types.Prompt {
	t.Helper()
	raw, err := json.Marshal(keywords)
	if err != nil {
		t.Fatalf("marshal keywords: %v", err)
	}
	prompt := &types.Prompt{
		ID:       uuid.New(),
		Text:     text,
		Language: "es",
		Keywords: datatypes.JSON(raw),
		Source:   "openai",
	}
	for _, category := range categories {
		prompt.Categories = append(prompt.Categories, &types.PromptCategory{
			ID:         uuid.New(),
			PromptID:   prompt.ID,
			CategoryID: category.ID,
		})
	}
	return prompt
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *types.Category {
	t.Helper()
	category := &types.Category{ID: uuid.New(), Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("insert category %s: %v", name, err)
	}
	return category
}

func TestCreateBulkIsolatesFailures(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromptRepo(db, newTestLogger(t))
	ctx := context.Background()

	familia := mustCategory(t, db, "Familia")
	good1 := newPrompt(t, "pregunta uno", nil, familia)
	bad := newPrompt(t, "duplicada", nil, familia)
	bad.ID = good1.ID
	good2 := newPrompt(t, "pregunta dos", nil, familia)

	report := repo.CreateBulk(ctx, nil, []*types.Prompt{good1, bad, good2})

	if len(report.Inserted) != 2 {
		t.Fatalf("inserted %d, want 2", len(report.Inserted))
	}
	if len(report.Failed) != 1 {
		t.Fatalf("failed %d, want 1", len(report.Failed))
	}
	if report.Failed[0].Index != 1 {
		t.Fatalf("failed index=%d, want 1", report.Failed[0].Index)
	}
	if report.Failed[0].Err == nil {
		t.Fatal("failure carries no error")
	}

	// The record after the failed one still landed.
	stored, err := repo.GetAll(ctx, nil, false)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored %d prompts, want 2", len(stored))
	}
}

func TestGetByCategoryName(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromptRepo(db, newTestLogger(t))
	ctx := context.Background()

	familia := mustCategory(t, db, "Familia")
	infancia := mustCategory(t, db, "Infancia")
	inFamilia := newPrompt(t, "de familia", nil, familia)
	inBoth := newPrompt(t, "de ambas", nil, familia, infancia)
	onlyInfancia := newPrompt(t, "de infancia", nil, infancia)
	for _, p := range []*types.Prompt{inFamilia, inBoth, onlyInfancia} {
		if _, err := repo.Create(ctx, nil, p); err != nil {
			t.Fatalf("create %s: %v", p.Text, err)
		}
	}

	results, err := repo.GetByCategoryName(ctx, nil, "Familia")
	if err != nil {
		t.Fatalf("GetByCategoryName: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d prompts, want 2", len(results))
	}
	for _, prompt := range results {
		if prompt.ID == onlyInfancia.ID {
			t.Fatalf("filter leaked prompt %q", prompt.Text)
		}
	}

	empty, err := repo.GetByCategoryName(ctx, nil, "Viajes")
	if err != nil {
		t.Fatalf("GetByCategoryName(Viajes): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("unmatched category returned %d prompts", len(empty))
	}
}

func TestSearchByKeywordExactMatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromptRepo(db, newTestLogger(t))
	ctx := context.Background()

	familia := mustCategory(t, db, "Familia")
	match := newPrompt(t, "con familia", []string{"familia", "casa"}, familia)
	other := newPrompt(t, "sin familia", []string{"escuela"}, familia)
	noKeywords := newPrompt(t, "vacio", nil, familia)
	for _, p := range []*types.Prompt{match, other, noKeywords} {
		if _, err := repo.Create(ctx, nil, p); err != nil {
			t.Fatalf("create %s: %v", p.Text, err)
		}
	}

	results, err := repo.SearchByKeyword(ctx, nil, "familia")
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if len(results) != 1 || results[0].ID != match.ID {
		t.Fatalf("got %d results, want only the matching prompt", len(results))
	}

	// Containment, not substring.
	results, err = repo.SearchByKeyword(ctx, nil, "famil")
	if err != nil {
		t.Fatalf("SearchByKeyword(famil): %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("substring matched %d prompts, want 0", len(results))
	}
}

func TestGetAllPreloadsCategoriesAndOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromptRepo(db, newTestLogger(t))
	ctx := context.Background()

	familia := mustCategory(t, db, "Familia")
	for _, text := range []string{"primera", "segunda"} {
		if _, err := repo.Create(ctx, nil, newPrompt(t, text, nil, familia)); err != nil {
			t.Fatalf("create %s: %v", text, err)
		}
	}

	stored, err := repo.GetAll(ctx, nil, false)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored %d prompts, want 2", len(stored))
	}
	for _, prompt := range stored {
		if len(prompt.Categories) != 1 || prompt.Categories[0].Category == nil {
			t.Fatalf("prompt %q missing preloaded category", prompt.Text)
		}
		if prompt.Categories[0].Category.Name != "Familia" {
			t.Fatalf("category=%q", prompt.Categories[0].Category.Name)
		}
	}
	// Newest first.
	if stored[0].CreatedAt.Before(stored[1].CreatedAt) {
		t.Fatalf("order violated: %v listed before %v", stored[0].CreatedAt, stored[1].CreatedAt)
	}
}
