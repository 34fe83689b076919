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

const expensePrefix = "expense:"

// BadgerExpenseRepository implements the expense repository interface using
// BadgerDB
type BadgerExpenseRepository struct {
	db *badger.DB
}

// NewBadgerExpenseRepository creates a new BadgerDB expense repository
func NewBadgerExpenseRepository(db *badger.DB) *BadgerExpenseRepository {
	return &BadgerExpenseRepository{db: db}
}

func expenseKey(id string) []byte {
	return []byte(expensePrefix + id)
}

// Store saves an expense and returns its ID
func (r *BadgerExpenseRepository) Store(ctx context.Context, expense *entity.Expense) (string, error) {
	data, err := json.Marshal(expense)
	if err != nil {
		return "", fmt.Errorf("failed to marshal expense: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(expenseKey(expense.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store expense: %w", err)
	}

	return expense.ID, nil
}

// FindByID retrieves an expense by its unique identifier
func (r *BadgerExpenseRepository) FindByID(ctx context.Context, id string) (*entity.Expense, error) {
	var expense entity.Expense

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(expenseKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &expense)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve expense: %w", err)
	}

	return &expense, nil
}

// FindAll retrieves every expense, newest expense date first
func (r *BadgerExpenseRepository) FindAll(ctx context.Context) ([]*entity.Expense, error) {
	var expenses []*entity.Expense

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(expensePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(expensePrefix)); it.Valid(); it.Next() {
			var expense entity.Expense
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &expense)
			}); err != nil {
				return err
			}
			expenses = append(expenses, &expense)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})

	return expenses, nil
}

// Update overwrites an existing expense
func (r *BadgerExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	data, err := json.Marshal(expense)
	if err != nil {
		return fmt.Errorf("failed to marshal expense: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(expenseKey(expense.ID)); err != nil {
			return err
		}
		return txn.Set(expenseKey(expense.ID), data)
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expense.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Delete removes an expense by ID
func (r *BadgerExpenseRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(expenseKey(id)); err != nil {
			return err
		}
		return txn.Delete(expenseKey(id))
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}
