package repository

import (
	"context"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

// CategoryRepository defines the interface for category storage
type CategoryRepository interface {
	Store(ctx context.Context, category *entity.Category) (string, error)
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
