package db

import (
	"context"
	"testing"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenseFixture(id, dateKey string) *entity.Expense {
	date, err := time.Parse(entity.DateLayout, dateKey)
	if err != nil {
		panic(err)
	}
	return &entity.Expense{
		ID:       id,
		Title:    "Expense " + id,
		Date:     date,
		Amount:   10.00,
		Currency: "USD",
	}
}

func TestBadgerExpenseRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Store and FindByID round trip", func(t *testing.T) {
		repo := NewBadgerExpenseRepository(newTestDB(t))

		expense := expenseFixture("e1", "2024-06-10")
		id, err := repo.Store(ctx, expense)
		require.NoError(t, err)
		assert.Equal(t, "e1", id)

		got, err := repo.FindByID(ctx, "e1")
		require.NoError(t, err)
		assert.Equal(t, expense.Title, got.Title)
		assert.Equal(t, expense.Amount, got.Amount)
	})

	t.Run("FindByID misses with not found", func(t *testing.T) {
		repo := NewBadgerExpenseRepository(newTestDB(t))

		_, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("FindAll sorts newest expense date first", func(t *testing.T) {
		repo := NewBadgerExpenseRepository(newTestDB(t))

		for _, fx := range []*entity.Expense{
			expenseFixture("e1", "2024-06-01"),
			expenseFixture("e2", "2024-06-12"),
			expenseFixture("e3", "2024-05-30"),
		} {
			_, err := repo.Store(ctx, fx)
			require.NoError(t, err)
		}

		all, err := repo.FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "e2", all[0].ID)
		assert.Equal(t, "e1", all[1].ID)
		assert.Equal(t, "e3", all[2].ID)
	})

	t.Run("Update overwrites and rejects missing IDs", func(t *testing.T) {
		repo := NewBadgerExpenseRepository(newTestDB(t))

		expense := expenseFixture("e1", "2024-06-10")
		_, err := repo.Store(ctx, expense)
		require.NoError(t, err)

		expense.Amount = 25.00
		require.NoError(t, repo.Update(ctx, expense))

		got, err := repo.FindByID(ctx, "e1")
		require.NoError(t, err)
		assert.Equal(t, 25.00, got.Amount)

		ghost := expenseFixture("ghost", "2024-06-10")
		assert.ErrorIs(t, repo.Update(ctx, ghost), apperrors.ErrNotFound)
	})

	t.Run("Delete removes and rejects missing IDs", func(t *testing.T) {
		repo := NewBadgerExpenseRepository(newTestDB(t))

		_, err := repo.Store(ctx, expenseFixture("e1", "2024-06-10"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, "e1"))

		_, err = repo.FindByID(ctx, "e1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, "e1"), apperrors.ErrNotFound)
	})
}
