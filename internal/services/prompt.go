package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

var (
	errNoPrompts       = errors.New("no prompts available")
	errNoCategoryMatch = errors.New("no prompts found for this category")
	errKeywordRequired = errors.New("keyword is required")
)

// RandomPrompt is the selector's answer: one prompt with its category labels.
type RandomPrompt struct {
	ID         uuid.UUID `json:"id"`
	Prompt     string    `json:"prompt"`
	Language   string    `json:"language"`
	Categories []string  `json:"categories"`
}

type PromptService interface {
	// SelectRandom returns one prompt uniformly at random among the
	// candidates, optionally filtered by category membership. No weighting
	// by recency or usage.
	SelectRandom(ctx context.Context, categoryFilter string) (*RandomPrompt, error)
	SearchByKeyword(ctx context.Context, keyword string) ([]*types.Prompt, error)
}

type promptService struct {
	db         *gorm.DB
	log        *logger.Logger
	promptRepo repos.PromptRepo
}

func NewPromptService(db *gorm.DB, log *logger.Logger, promptRepo repos.PromptRepo) PromptService {
	serviceLog := log.With("service", "PromptService")
	return &promptService{db: db, log: serviceLog, promptRepo: promptRepo}
}

func (s *promptService) SelectRandom(ctx context.Context, categoryFilter string) (*RandomPrompt, error) {
	categoryFilter = strings.TrimSpace(categoryFilter)

	var (
		candidates []*types.Prompt
		err        error
	)
	if categoryFilter != "" {
		candidates, err = s.promptRepo.GetByCategoryName(ctx, nil, categoryFilter)
	} else {
		candidates, err = s.promptRepo.GetAll(ctx, nil, false)
	}
	if err != nil {
		return nil, apierr.Persistence(err)
	}

	if len(candidates) == 0 {
		if categoryFilter != "" {
			return nil, apierr.NotFound(errNoCategoryMatch)
		}
		return nil, apierr.NotFound(errNoPrompts)
	}

	chosen := candidates[rand.Intn(len(candidates))]
	return &RandomPrompt{
		ID:         chosen.ID,
		Prompt:     chosen.Text,
		Language:   chosen.Language,
		Categories: chosen.CategoryNames(),
	}, nil
}

func (s *promptService) SearchByKeyword(ctx context.Context, keyword string) ([]*types.Prompt, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apierr.Validation(errKeywordRequired)
	}

	results, err := s.promptRepo.SearchByKeyword(ctx, nil, keyword)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return results, nil
}
