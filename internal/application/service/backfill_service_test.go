// internal/application/service/backfill_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/gfranzini/expense-rate-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestBackfill(rateRepo *mocks.MockRateRepository, provider *mocks.MockRateProvider, pause time.Duration) (*BackfillService, *int) {
	log := logger.NewJSONLogger(nil, logger.ErrorLevel)
	job := NewBackfillService(rateRepo, provider, pause, log)

	pauses := 0
	job.sleep = func(d time.Duration) {
		if d == pause {
			pauses++
		}
	}
	return job, &pauses
}

func day(s string) time.Time {
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func notFoundErr() error {
	return fmt.Errorf("%w: no rate table", apperrors.ErrNotFound)
}

func TestBackfillRun(t *testing.T) {
	ctx := context.Background()
	pause := 6 * time.Second

	t.Run("Stored dates are skipped without pausing", func(t *testing.T) {
		rateRepo := new(mocks.MockRateRepository)
		provider := new(mocks.MockRateProvider)
		job, pauses := newTestBackfill(rateRepo, provider, pause)

		// Store already holds 2024-01-01..2024-01-03; the walk covers
		// 2024-01-05 back to 2024-01-01.
		for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
			rateRepo.On("FindByDate", ctx, day(d)).Return(sampleTable(day(d)), nil).Once()
		}
		for _, d := range []string{"2024-01-04", "2024-01-05"} {
			date := day(d)
			table := sampleTable(date)
			rateRepo.On("FindByDate", ctx, date).Return(nil, notFoundErr()).Once()
			provider.On("FetchRates", ctx, date).Return(table, nil).Once()
			rateRepo.On("Insert", ctx, table).Return(table, nil).Once()
		}

		summary, err := job.Run(ctx, day("2024-01-05"), 5)

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Fetched)
		assert.Equal(t, 3, summary.Skipped)
		assert.Equal(t, 0, summary.Failed)
		assert.Equal(t, 2, *pauses)
		rateRepo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("Provider failure for one date does not abort the batch", func(t *testing.T) {
		rateRepo := new(mocks.MockRateRepository)
		provider := new(mocks.MockRateProvider)
		job, pauses := newTestBackfill(rateRepo, provider, pause)

		bad := day("2024-02-10")
		good := day("2024-02-09")
		table := sampleTable(good)

		rateRepo.On("FindByDate", ctx, bad).Return(nil, notFoundErr()).Once()
		provider.On("FetchRates", ctx, bad).
			Return(nil, fmt.Errorf("%w: status 500", apperrors.ErrProviderUnavailable)).Once()
		rateRepo.On("FindByDate", ctx, good).Return(nil, notFoundErr()).Once()
		provider.On("FetchRates", ctx, good).Return(table, nil).Once()
		rateRepo.On("Insert", ctx, table).Return(table, nil).Once()

		summary, err := job.Run(ctx, bad, 2)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Fetched)
		assert.Equal(t, 1, summary.Failed)
		// Failed attempts still count as network attempts and pause.
		assert.Equal(t, 2, *pauses)
	})

	t.Run("Duplicate insert is benign", func(t *testing.T) {
		rateRepo := new(mocks.MockRateRepository)
		provider := new(mocks.MockRateProvider)
		job, _ := newTestBackfill(rateRepo, provider, pause)

		date := day("2024-03-01")
		table := sampleTable(date)
		rateRepo.On("FindByDate", ctx, date).Return(nil, notFoundErr()).Once()
		provider.On("FetchRates", ctx, date).Return(table, nil).Once()
		rateRepo.On("Insert", ctx, table).
			Return(table, fmt.Errorf("%w: 2024-03-01", apperrors.ErrDuplicateDate)).Once()

		summary, err := job.Run(ctx, date, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Fetched)
		assert.Equal(t, 0, summary.Failed)
	})

	t.Run("Non-positive day count is rejected", func(t *testing.T) {
		rateRepo := new(mocks.MockRateRepository)
		provider := new(mocks.MockRateProvider)
		job, _ := newTestBackfill(rateRepo, provider, pause)

		_, err := job.Run(ctx, day("2024-01-05"), 0)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Cancellation stops between iterations", func(t *testing.T) {
		rateRepo := new(mocks.MockRateRepository)
		provider := new(mocks.MockRateProvider)
		job, _ := newTestBackfill(rateRepo, provider, pause)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		summary, err := job.Run(cancelled, day("2024-01-05"), 5)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, summary.Fetched)
		rateRepo.AssertNotCalled(t, "FindByDate", mock.Anything, mock.Anything)
	})
}
