package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
	"github.com/recuerdalab/memoryprompts-backend/internal/repos"
	"github.com/recuerdalab/memoryprompts-backend/internal/types"
)

// CategoryService maps category and subcategory names onto persistent
// hierarchy nodes, creating missing ones lazily. Resolution is idempotent:
// resolving the same name twice returns the same row.
type CategoryService interface {
	// ResolveTree resolves the main category (created as a root when absent)
	// plus every subcategory. A subcategory created here is parented under
	// the main category; one that already exists is connected as-is.
	ResolveTree(ctx context.Context, category string, subcategories []string) ([]*types.Category, error)
	ListRoots(ctx context.Context) ([]*types.Category, error)
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	serviceLog := log.With("service", "CategoryService")
	return &categoryService{db: db, log: serviceLog, categoryRepo: categoryRepo}
}

func (s *categoryService) ResolveTree(ctx context.Context, category string, subcategories []string) ([]*types.Category, error) {
	name := strings.TrimSpace(category)
	if name == "" {
		return nil, apierr.Validation(errMissingCategory)
	}

	main, err := s.categoryRepo.ConnectOrCreate(ctx, nil, name, nil)
	if err != nil {
		return nil, apierr.Persistence(err)
	}

	resolved := []*types.Category{main}
	seen := map[string]bool{main.Name: true}

	for _, sub := range subcategories {
		subName := strings.TrimSpace(sub)
		if subName == "" || seen[subName] {
			continue
		}
		node, err := s.categoryRepo.ConnectOrCreate(ctx, nil, subName, &main.ID)
		if err != nil {
			return nil, apierr.Persistence(err)
		}
		seen[node.Name] = true
		resolved = append(resolved, node)
	}
	return resolved, nil
}

func (s *categoryService) ListRoots(ctx context.Context) ([]*types.Category, error) {
	roots, err := s.categoryRepo.GetRootsWithChildren(ctx, nil)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return roots, nil
}
