// Package service internal/application/service/rate_resolver_service.go
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

// RateResolverService performs cache-aside rate resolution: the store is
// consulted first, and the external provider only on a miss, with the
// fetched table persisted for every later reader.
type RateResolverService struct {
	rateRepo repository.RateRepository
	provider domainsvc.RateProvider
	logger   logger.Logger

	// staleFallback lets ResolveLatest fall back to the newest stored
	// table of any date when yesterday cannot be resolved. Off unless
	// explicitly configured; the strict contract surfaces the failure.
	staleFallback bool

	now func() time.Time
}

// ResolverOption configures a RateResolverService.
type ResolverOption func(*RateResolverService)

// WithStaleFallback makes ResolveLatest return the newest stored table of
// any date when yesterday's table cannot be resolved, instead of failing.
func WithStaleFallback() ResolverOption {
	return func(s *RateResolverService) {
		s.staleFallback = true
	}
}

// NewRateResolverService creates a new rate resolver
func NewRateResolverService(rateRepo repository.RateRepository, provider domainsvc.RateProvider, log logger.Logger, opts ...ResolverOption) *RateResolverService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	s := &RateResolverService{
		rateRepo: rateRepo,
		provider: provider,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveHistorical resolves the rate table for a strictly past date. On a
// store miss it fetches from the provider and persists the result; when a
// concurrent resolver wins the insert race, the canonical stored table is
// re-read so every caller observes the same rates for a date.
func (s *RateResolverService) ResolveHistorical(ctx context.Context, date time.Time) (*entity.RateResolution, error) {
	day := entity.DateOnly(date)
	today := entity.DateOnly(s.now())
	dateKey := day.Format(entity.DateLayout)

	if !day.Before(today) {
		return nil, fmt.Errorf("%w: %s is not strictly in the past", apperrors.ErrInvalidDate, dateKey)
	}

	table, err := s.rateRepo.FindByDate(ctx, day)
	if err == nil {
		s.logger.Debug("Rate table resolved from store", map[string]interface{}{
			"date": dateKey,
		})
		return &entity.RateResolution{Table: table, CacheHit: true}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up rate table for %s: %w", dateKey, err)
	}

	s.logger.Info("Rate table missing from store, fetching from provider", map[string]interface{}{
		"date": dateKey,
	})

	fetched, err := s.provider.FetchRates(ctx, day)
	if err != nil {
		// No placeholder is persisted and no retry happens here; the
		// caller decides whether to try again.
		s.logger.Error("Provider fetch failed", map[string]interface{}{
			"date":  dateKey,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", dateKey, err)
	}

	if err := fetched.Validate(); err != nil {
		return nil, fmt.Errorf("%w: provider returned unusable table for %s: %v", apperrors.ErrProviderUnavailable, dateKey, err)
	}

	stored, err := s.rateRepo.Insert(ctx, fetched)
	if errors.Is(err, apperrors.ErrDuplicateDate) {
		// A concurrent resolver persisted this date first. Discard the
		// fresh fetch and serve the stored table.
		s.logger.Info("Lost insert race, using stored rate table", map[string]interface{}{
			"date": dateKey,
		})
		canonical, readErr := s.rateRepo.FindByDate(ctx, day)
		if readErr != nil {
			return nil, fmt.Errorf("failed to re-read rate table for %s after duplicate insert: %w", dateKey, readErr)
		}
		return &entity.RateResolution{Table: canonical, CacheHit: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist rate table for %s: %w", dateKey, err)
	}

	s.logger.Info("Rate table fetched and persisted", map[string]interface{}{
		"date":       dateKey,
		"currencies": len(stored.Rates),
	})

	return &entity.RateResolution{Table: stored, CacheHit: false}, nil
}

// ResolveLatest resolves the table for yesterday relative to call time.
// "Latest" never means today: today's market data is not yet finalized by
// the provider, so yesterday is the most recent date guaranteed available.
func (s *RateResolverService) ResolveLatest(ctx context.Context) (*entity.RateResolution, error) {
	yesterday := entity.DateOnly(s.now()).AddDate(0, 0, -1)

	res, err := s.ResolveHistorical(ctx, yesterday)
	if err == nil {
		return res, nil
	}

	if s.staleFallback {
		table, fbErr := s.rateRepo.FindLatest(ctx)
		if fbErr == nil {
			s.logger.Warn("Latest resolution failed, serving newest stored table", map[string]interface{}{
				"wanted": yesterday.Format(entity.DateLayout),
				"served": table.DateKey(),
				"error":  err.Error(),
			})
			return &entity.RateResolution{Table: table, CacheHit: true}, nil
		}
	}

	return nil, fmt.Errorf("%w: resolving %s: %v", apperrors.ErrNoDataAvailable, yesterday.Format(entity.DateLayout), err)
}
