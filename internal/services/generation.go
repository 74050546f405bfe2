package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/clients/openai"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/normalization"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

const (
	LanguageSpanish = "es"
	LanguageEnglish = "en"

	defaultAmount = 5
	sourceTag     = "openai"

	// Creative but bounded variety for question generation.
	generationTemperature = 0.8
)

var (
	errMissingCategory = errors.New("category is required")
	errBadLanguage     = errors.New("language must be \"es\" or \"en\"")
	errBadAmount       = errors.New("amount must be a positive integer")
)

// WriteMode selects how a generation run persists its results.
type WriteMode string

const (
	// WriteModePerItem creates each prompt with its category links as one
	// logical write, tolerating per-item failure.
	WriteModePerItem WriteMode = "per_item"
	// WriteModeBulk builds the full record list first, then inserts
	// unordered with per-record failure isolation.
	WriteModeBulk WriteMode = "bulk"
)

type GenerateRequest struct {
	Category      string
	Language      string
	Amount        int
	Subcategories []string
	Mode          WriteMode
	// DryRun builds the records without touching the store.
	DryRun bool
}

type GenerationResult struct {
	// Prompts durably stored, or built when DryRun.
	Prompts []*types.Prompt
	// Items that failed persistence and were skipped.
	Failed int
	DryRun bool
}

// GenerationService runs the full pipeline: model call, output
// normalization, per-prompt keyword extraction, category resolution and
// persistence. Keyword extraction is sequential over prompts so one run
// never holds more than one outbound model call at a time.
type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerationResult, error)
}

type generationService struct {
	db         *gorm.DB
	log        *logger.Logger
	ai         openai.Client
	keywords   KeywordService
	categories CategoryService
	promptRepo repos.PromptRepo
}

func NewGenerationService(
	db *gorm.DB,
	log *logger.Logger,
	ai openai.Client,
	keywords KeywordService,
	categories CategoryService,
	promptRepo repos.PromptRepo,
) GenerationService {
	serviceLog := log.With("service", "GenerationService")
	return &generationService{
		db:         db,
		log:        serviceLog,
		ai:         ai,
		keywords:   keywords,
		categories: categories,
		promptRepo: promptRepo,
	}
}

const generationSystemPrompt = "Eres un generador de frases sensibles para explorar recuerdos y emociones, mantenlo sencillo y cálido."

func generationInstruction(category, language string, amount int, subcategories []string) string {
	languageName := "español"
	if language == LanguageEnglish {
		languageName = "inglés"
	}

	context := ""
	if len(subcategories) > 0 {
		context = fmt.Sprintf("En particular, enfócate en los siguientes temas: %s.", strings.Join(subcategories, ", "))
	}

	return strings.TrimSpace(fmt.Sprintf(`
Genera %d preguntas en %s que inviten a una persona a recordar momentos personales relacionados con el tema "%s".
%s

Las preguntas deben:
- Ser claras y directas
- Estar formuladas como si alguien entrevistara con cariño a un familiar
- Evocar memorias específicas (ej. lugares, personas, emociones)

No incluyas frases poéticas, reflexiones filosóficas ni metáforas.

Responde solamente con la lista de preguntas, una por línea.
`, amount, languageName, category, context))
}

func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (*GenerationResult, error) {
	req, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	instruction := generationInstruction(req.Category, req.Language, req.Amount, req.Subcategories)
	raw, err := s.ai.ChatText(ctx, generationSystemPrompt, instruction, generationTemperature)
	if err != nil {
		s.log.Error("Prompt generation call failed", "category", req.Category, "error", err)
		return nil, apierr.UpstreamModel(err)
	}

	texts := normalization.SplitPrompts(raw)
	s.log.Info("Generated candidate prompts", "category", req.Category, "requested", req.Amount, "got", len(texts))

	// Categories resolve once per run; every produced prompt links to the
	// same nodes.
	categories, err := s.categories.ResolveTree(ctx, req.Category, req.Subcategories)
	if err != nil {
		return nil, err
	}

	switch req.Mode {
	case WriteModeBulk:
		return s.persistBulk(ctx, req, texts, categories)
	default:
		return s.persistPerItem(ctx, req, texts, categories)
	}
}

func (s *generationService) validate(req GenerateRequest) (GenerateRequest, error) {
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		return req, apierr.Validation(errMissingCategory)
	}

	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	switch req.Language {
	case "":
		req.Language = LanguageSpanish
	case LanguageSpanish, LanguageEnglish:
	default:
		return req, apierr.Validation(errBadLanguage)
	}

	if req.Amount < 0 {
		return req, apierr.Validation(errBadAmount)
	}
	if req.Amount == 0 {
		req.Amount = defaultAmount
	}

	if req.Mode == "" {
		req.Mode = WriteModePerItem
	}
	return req, nil
}

// buildPrompt assembles one prompt record, running keyword extraction for
// its text.
func (s *generationService) buildPrompt(ctx context.Context, req GenerateRequest, text string, categories []*types.Category) *types.Prompt {
	keywords := s.keywords.Extract(ctx, text)
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		// Keywords are best-effort all the way down.
		keywordsJSON = []byte("[]")
	}

	prompt := &types.Prompt{
		ID:       uuid.New(),
		Text:     text,
		Language: req.Language,
		Keywords: datatypes.JSON(keywordsJSON),
		Source:   sourceTag,
		Model:    s.ai.Model(),
	}
	for _, category := range categories {
		prompt.Categories = append(prompt.Categories, &types.PromptCategory{
			ID:         uuid.New(),
			PromptID:   prompt.ID,
			CategoryID: category.ID,
			Category:   category,
		})
	}
	return prompt
}

// persistPerItem extracts keywords and creates each prompt with its links as
// one logical write. A failed item is logged and skipped; the batch always
// continues to the next item.
func (s *generationService) persistPerItem(ctx context.Context, req GenerateRequest, texts []string, categories []*types.Category) (*GenerationResult, error) {
	result := &GenerationResult{DryRun: req.DryRun}
	for _, text := range texts {
		prompt := s.buildPrompt(ctx, req, text, categories)
		if req.DryRun {
			result.Prompts = append(result.Prompts, prompt)
			continue
		}
		if _, err := s.promptRepo.Create(ctx, nil, prompt); err != nil {
			s.log.Warn("Failed to persist prompt, continuing with batch", "text", text, "error", err)
			result.Failed++
			continue
		}
		result.Prompts = append(result.Prompts, prompt)
	}
	return result, nil
}

// persistBulk builds the full in-memory record list first, then issues an
// unordered bulk write whose report names exactly what was durably inserted.
func (s *generationService) persistBulk(ctx context.Context, req GenerateRequest, texts []string, categories []*types.Category) (*GenerationResult, error) {
	records := make([]*types.Prompt, 0, len(texts))
	for _, text := range texts {
		records = append(records, s.buildPrompt(ctx, req, text, categories))
	}

	if req.DryRun {
		return &GenerationResult{Prompts: records, DryRun: true}, nil
	}

	report := s.promptRepo.CreateBulk(ctx, nil, records)
	return &GenerationResult{Prompts: report.Inserted, Failed: len(report.Failed)}, nil
}
