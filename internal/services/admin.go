package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

// AdminPrompt is one row of the full admin dump.
type AdminPrompt struct {
	ID         uuid.UUID      `json:"id"`
	Text       string         `json:"text"`
	Language   string         `json:"language"`
	Source     string         `json:"source"`
	Keywords   interface{}    `json:"keywords"`
	CreatedAt  time.Time      `json:"created_at"`
	Categories []string       `json:"categories"`
	EventCount int            `json:"event_count"`
	Events     []*types.Event `json:"events"`
}

// PromptRef is the lightweight prompt reference carried inside a category
// summary.
type PromptRef struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

type CategorySummary struct {
	Name    string      `json:"name"`
	Count   int         `json:"count"`
	Prompts []PromptRef `json:"prompts"`
}

type SummaryResult struct {
	TotalPrompts    int `json:"total_prompts"`
	TotalCategories int `json:"total_categories"`
	// Sorted descending by count; ties keep first-encountered order.
	Summary   []*CategorySummary          `json:"summary"`
	Breakdown map[string]*CategorySummary `json:"category_breakdown"`
}

// AdminService serves the credential-gated full dump and the per-category
// aggregation.
type AdminService interface {
	ListAll(ctx context.Context) ([]*AdminPrompt, error)
	Summary(ctx context.Context) (*SummaryResult, error)
}

type adminService struct {
	db         *gorm.DB
	log        *logger.Logger
	promptRepo repos.PromptRepo
}

func NewAdminService(db *gorm.DB, log *logger.Logger, promptRepo repos.PromptRepo) AdminService {
	serviceLog := log.With("service", "AdminService")
	return &adminService{db: db, log: serviceLog, promptRepo: promptRepo}
}

func (s *adminService) ListAll(ctx context.Context) ([]*AdminPrompt, error) {
	prompts, err := s.promptRepo.GetAll(ctx, nil, true)
	if err != nil {
		return nil, apierr.Persistence(err)
	}

	out := make([]*AdminPrompt, 0, len(prompts))
	for _, prompt := range prompts {
		events := prompt.Events
		if events == nil {
			events = []*types.Event{}
		}
		out = append(out, &AdminPrompt{
			ID:         prompt.ID,
			Text:       prompt.Text,
			Language:   prompt.Language,
			Source:     prompt.Source,
			Keywords:   prompt.Keywords,
			CreatedAt:  prompt.CreatedAt,
			Categories: prompt.CategoryNames(),
			EventCount: len(events),
			Events:     events,
		})
	}
	return out, nil
}

func (s *adminService) Summary(ctx context.Context) (*SummaryResult, error) {
	prompts, err := s.promptRepo.GetAll(ctx, nil, false)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return buildCategorySummary(prompts), nil
}

// buildCategorySummary fans each prompt out over its linked categories: a
// prompt in two categories counts once per category, so the per-category
// counts can sum to more than the prompt total.
func buildCategorySummary(prompts []*types.Prompt) *SummaryResult {
	breakdown := make(map[string]*CategorySummary)
	var order []string

	for _, prompt := range prompts {
		for _, name := range prompt.CategoryNames() {
			summary, ok := breakdown[name]
			if !ok {
				summary = &CategorySummary{Name: name, Prompts: []PromptRef{}}
				breakdown[name] = summary
				order = append(order, name)
			}
			summary.Count++
			summary.Prompts = append(summary.Prompts, PromptRef{
				ID:        prompt.ID,
				Text:      prompt.Text,
				Language:  prompt.Language,
				CreatedAt: prompt.CreatedAt,
			})
		}
	}

	summaries := make([]*CategorySummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, breakdown[name])
	}
	// Stable sort keeps first-encountered order among equal counts.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})

	return &SummaryResult{
		TotalPrompts:    len(prompts),
		TotalCategories: len(summaries),
		Summary:         summaries,
		Breakdown:       breakdown,
	}
}
