package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/domain/repository"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/google/uuid"
)

// CategoryService handles business logic for expense categories. Hierarchy
// is a parent-id back-reference resolved through the repository; every
// reparenting walks the chain and rejects cycles before persisting.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger logger.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repository.CategoryRepository, log logger.Logger) *CategoryService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CategoryService{
		repo:   repo,
		logger: log,
	}
}

// CreateCategory creates and stores a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name, parentID string) (string, error) {
	category := &entity.Category{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(name),
		ParentID: parentID,
	}

	if err := category.Validate(); err != nil {
		return "", err
	}

	if parentID != "" {
		if _, err := s.repo.FindByID(ctx, parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: parent category %s does not exist", apperrors.ErrValidation, parentID)
			}
			return "", err
		}
	}

	return s.repo.Store(ctx, category)
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return s.repo.FindByID(ctx, id)
}

// ListCategories retrieves every category
func (s *CategoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.repo.FindAll(ctx)
}

// UpdateCategory renames and/or reparents a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, name, parentID *string) (*entity.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		category.Name = strings.TrimSpace(*name)
	}
	if parentID != nil {
		category.ParentID = *parentID
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if parentID != nil && *parentID != "" {
		if err := s.validateAcyclic(ctx, id, *parentID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category by ID
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// validateAcyclic walks parent links from newParentID and fails when the
// chain reaches id, which would close a cycle.
func (s *CategoryService) validateAcyclic(ctx context.Context, id, newParentID string) error {
	seen := map[string]bool{id: true}
	current := newParentID

	for current != "" {
		if seen[current] {
			return fmt.Errorf("%w: reparenting would create a category cycle", apperrors.ErrValidation)
		}
		seen[current] = true

		parent, err := s.repo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent category %s does not exist", apperrors.ErrValidation, current)
			}
			return err
		}
		current = parent.ParentID
	}

	return nil
}
