package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

const categoryPrefix = "category:"

// BadgerCategoryRepository implements the category repository interface
// using BadgerDB
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerDB category repository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

func categoryKey(id string) []byte {
	return []byte(categoryPrefix + id)
}

// Store saves a category and returns its ID
func (r *BadgerCategoryRepository) Store(ctx context.Context, category *entity.Category) (string, error) {
	data, err := json.Marshal(category)
	if err != nil {
		return "", fmt.Errorf("failed to marshal category: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(categoryKey(category.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store category: %w", err)
	}

	return category.ID, nil
}

// FindByID retrieves a category by its unique identifier
func (r *BadgerCategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	var category entity.Category

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(categoryKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &category)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}

	return &category, nil
}

// FindAll retrieves every category sorted by name
func (r *BadgerCategoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(categoryPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(categoryPrefix)); it.Valid(); it.Next() {
			var category entity.Category
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &category)
			}); err != nil {
				return err
			}
			categories = append(categories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

// Update overwrites an existing category
func (r *BadgerCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	data, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("failed to marshal category: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(categoryKey(category.ID)); err != nil {
			return err
		}
		return txn.Set(categoryKey(category.ID), data)
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, category.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Delete removes a category by ID
func (r *BadgerCategoryRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(categoryKey(id)); err != nil {
			return err
		}
		return txn.Delete(categoryKey(id))
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
