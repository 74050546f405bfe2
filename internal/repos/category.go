package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

type CategoryRepo interface {
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Category, error)
	Create(ctx context.Context, tx *gorm.DB, category *types.Category) (*types.Category, error)
	// ConnectOrCreate resolves a category by exact name, creating it when
	// absent. A uniqueness violation on create means a concurrent run won the
	// race; the winner is re-fetched instead of failing the caller.
	ConnectOrCreate(ctx context.Context, tx *gorm.DB, name string, parentID *uuid.UUID) (*types.Category, error)
	GetRootsWithChildren(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (r *categoryRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Category
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, category *types.Category) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) ConnectOrCreate(ctx context.Context, tx *gorm.DB, name string, parentID *uuid.UUID) (*types.Category, error) {
	existing, err := r.GetByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created, err := r.Create(ctx, tx, &types.Category{ID: uuid.New(), Name: name, ParentID: parentID})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Lost the race: another run inserted the same name between our lookup
	// and create. Use the row that won.
	r.log.Debug("Category create hit uniqueness constraint, re-fetching winner", "name", name)
	winner, lookupErr := r.GetByName(ctx, tx, name)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if winner == nil {
		return nil, err
	}
	return winner, nil
}

func (r *categoryRepo) GetRootsWithChildren(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Where("parent_id IS NULL").
		Preload("Children").
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
