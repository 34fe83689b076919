package service

import (
	"context"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

// RateProvider defines the interface for fetching a full rate table for one
// calendar date from the external provider.
type RateProvider interface {
	// FetchRates makes one network call for the given date. Failures of
	// any kind (network, status, body) wrap apperrors.ErrProviderUnavailable.
	FetchRates(ctx context.Context, date time.Time) (*entity.RateTable, error)
}
