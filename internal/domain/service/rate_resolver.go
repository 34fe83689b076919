package service

import (
	"context"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

// RateResolver defines the cache-aside resolution interface consumed by the
// currency converter and the rate endpoints.
type RateResolver interface {
	// ResolveHistorical returns the rate table for a strictly past date,
	// fetching and persisting it on a store miss. Today and future dates
	// fail with apperrors.ErrInvalidDate.
	ResolveHistorical(ctx context.Context, date time.Time) (*entity.RateResolution, error)

	// ResolveLatest resolves the table for yesterday relative to call
	// time. Failure surfaces as apperrors.ErrNoDataAvailable.
	ResolveLatest(ctx context.Context) (*entity.RateResolution, error)
}
