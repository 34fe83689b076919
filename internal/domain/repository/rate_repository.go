// Package repository internal/domain/repository/rate_repository.go
package repository

import (
	"context"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

// RateRepository defines the interface for rate table storage. One table is
// stored per calendar date; tables are never updated or overwritten.
type RateRepository interface {
	// FindByDate returns the table stored for the exact date, or
	// apperrors.ErrNotFound.
	FindByDate(ctx context.Context, date time.Time) (*entity.RateTable, error)

	// FindLatest returns the table with the maximum stored date, or
	// apperrors.ErrNotFound when the store is empty.
	FindLatest(ctx context.Context) (*entity.RateTable, error)

	// Insert stores a new table atomically, insert-if-absent. When a table
	// for the date already exists it returns the stored table together
	// with apperrors.ErrDuplicateDate; the caller treats that as benign.
	Insert(ctx context.Context, table *entity.RateTable) (*entity.RateTable, error)
}
