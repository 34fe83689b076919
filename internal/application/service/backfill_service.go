// Package service internal/application/service/backfill_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/domain/repository"
	domainsvc "github.com/gfranzini/expense-rate-service/internal/domain/service"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
)

// BackfillService populates the rate store over a date range. It runs
// strictly sequentially and sleeps a fixed pause after every network
// attempt to stay under the provider's request-rate ceiling; dates already
// stored are skipped without pausing.
type BackfillService struct {
	rateRepo repository.RateRepository
	provider domainsvc.RateProvider
	pause    time.Duration
	logger   logger.Logger

	sleep func(time.Duration)
}

// BackfillSummary reports what one run did.
type BackfillSummary struct {
	Fetched int
	Skipped int
	Failed  int
}

// NewBackfillService creates a new backfill service with the given
// inter-request pause.
func NewBackfillService(rateRepo repository.RateRepository, provider domainsvc.RateProvider, pause time.Duration, log logger.Logger) *BackfillService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BackfillService{
		rateRepo: rateRepo,
		provider: provider,
		pause:    pause,
		logger:   log,
		sleep:    time.Sleep,
	}
}

// Run walks days dates backward from start, fetching and persisting every
// date the store does not already hold. A single date's provider failure is
// logged and the walk continues; failed dates are not retried within the
// run. Cancellation is honored between iterations only.
func (s *BackfillService) Run(ctx context.Context, start time.Time, days int) (*BackfillSummary, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: day count must be positive", apperrors.ErrValidation)
	}

	startDay := entity.DateOnly(start)
	summary := &BackfillSummary{}

	s.logger.Info("Starting rate backfill", map[string]interface{}{
		"start": startDay.Format(entity.DateLayout),
		"days":  days,
		"pause": s.pause.String(),
	})

	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		day := startDay.AddDate(0, 0, -i)
		dateKey := day.Format(entity.DateLayout)

		_, err := s.rateRepo.FindByDate(ctx, day)
		if err == nil {
			s.logger.Debug("Rate table already stored, skipping", map[string]interface{}{
				"date": dateKey,
			})
			summary.Skipped++
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return summary, fmt.Errorf("failed to check store for %s: %w", dateKey, err)
		}

		if err := s.fetchAndStore(ctx, day); err != nil {
			s.logger.Warn("Backfill failed for date, continuing", map[string]interface{}{
				"date":  dateKey,
				"error": err.Error(),
			})
			summary.Failed++
		} else {
			summary.Fetched++
		}

		// Pace every network attempt, success or failure.
		s.sleep(s.pause)
	}

	s.logger.Info("Rate backfill finished", map[string]interface{}{
		"fetched": summary.Fetched,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	})

	return summary, nil
}

func (s *BackfillService) fetchAndStore(ctx context.Context, day time.Time) error {
	table, err := s.provider.FetchRates(ctx, day)
	if err != nil {
		return err
	}

	if _, err := s.rateRepo.Insert(ctx, table); err != nil {
		// Another writer beat us to the date; the store already holds a
		// table, which is all this job is after.
		if errors.Is(err, apperrors.ErrDuplicateDate) {
			return nil
		}
		return err
	}
	return nil
}
