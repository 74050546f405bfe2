package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

// BulkFailure names one record that could not be stored during a bulk write.
type BulkFailure struct {
	Index int
	Err   error
}

// BulkReport says exactly which records of a bulk write were durably
// inserted. Bulk writes are unordered and per-record: one failure never
// blocks the remaining records.
type BulkReport struct {
	Inserted []*types.Prompt
	Failed   []BulkFailure
}

type PromptRepo interface {
	// Create stores one prompt together with its category links as one
	// logical write.
	Create(ctx context.Context, tx *gorm.DB, prompt *types.Prompt) (*types.Prompt, error)
	CreateBulk(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) BulkReport
	GetAll(ctx context.Context, tx *gorm.DB, withEvents bool) ([]*types.Prompt, error)
	GetByCategoryName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Prompt, error)
	SearchByKeyword(ctx context.Context, tx *gorm.DB, keyword string) ([]*types.Prompt, error)
}

type promptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptRepo(db *gorm.DB, baseLog *logger.Logger) PromptRepo {
	repoLog := baseLog.With("repo", "PromptRepo")
	return &promptRepo{db: db, log: repoLog}
}

func (r *promptRepo) Create(ctx context.Context, tx *gorm.DB, prompt *types.Prompt) (*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

func (r *promptRepo) CreateBulk(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) BulkReport {
	var report BulkReport
	for i, prompt := range prompts {
		if _, err := r.Create(ctx, tx, prompt); err != nil {
			r.log.Warn("Bulk insert failed for record, continuing", "index", i, "error", err)
			report.Failed = append(report.Failed, BulkFailure{Index: i, Err: err})
			continue
		}
		report.Inserted = append(report.Inserted, prompt)
	}
	return report
}

func (r *promptRepo) GetAll(ctx context.Context, tx *gorm.DB, withEvents bool) ([]*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Preload("Categories.Category").
		Order("created_at DESC")
	if withEvents {
		query = query.Preload("Events")
	}

	var results []*types.Prompt
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *promptRepo) GetByCategoryName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Prompt
	if err := transaction.WithContext(ctx).
		Joins("JOIN prompt_category ON prompt_category.prompt_id = prompt.id").
		Joins("JOIN category ON category.id = prompt_category.category_id").
		Where("category.name = ?", name).
		Preload("Categories.Category").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *promptRepo) SearchByKeyword(ctx context.Context, tx *gorm.DB, keyword string) ([]*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Preload("Categories.Category")

	// Exact-match containment against the keywords JSON array; the predicate
	// differs per dialect.
	switch transaction.Dialector.Name() {
	case "postgres":
		needle, err := json.Marshal([]string{keyword})
		if err != nil {
			return nil, fmt.Errorf("marshal keyword needle: %w", err)
		}
		query = query.Where("keywords @> ?", datatypes.JSON(needle))
	default:
		query = query.Where(
			"EXISTS (SELECT 1 FROM json_each(prompt.keywords) WHERE json_each.value = ?)",
			keyword,
		)
	}

	var results []*types.Prompt
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
