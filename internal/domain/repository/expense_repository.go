package repository

import (
	"context"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense storage
type ExpenseRepository interface {
	// Store saves an expense and returns its ID
	Store(ctx context.Context, expense *entity.Expense) (string, error)

	// FindByID retrieves an expense by its unique identifier
	FindByID(ctx context.Context, id string) (*entity.Expense, error)

	// FindAll retrieves every expense, newest expense date first
	FindAll(ctx context.Context) ([]*entity.Expense, error)

	// Update overwrites an existing expense
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense by ID
	Delete(ctx context.Context, id string) error
}
