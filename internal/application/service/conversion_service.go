// Package service internal/application/service/conversion_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	domainsvc "github.com/gfranzini/expense-rate-service/internal/domain/service"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
)

// ConversionService converts amounts between currencies using the rate
// table appropriate for the expense date: the table dated to the expense's
// own day for past dates, the latest available table otherwise.
type ConversionService struct {
	resolver domainsvc.RateResolver
	logger   logger.Logger
	now      func() time.Time
}

// NewConversionService creates a new conversion service
func NewConversionService(resolver domainsvc.RateResolver, log logger.Logger) *ConversionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ConversionService{
		resolver: resolver,
		logger:   log,
		now:      time.Now,
	}
}

// round2 rounds to exactly two decimals, half up, without accumulating
// binary float drift in the last cent.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Convert converts amount from one currency to another for an expense
// dated expenseDate. Each rate is relative to the table's implicit base
// currency, so the cross rate is toRate / fromRate.
func (s *ConversionService) Convert(ctx context.Context, amount float64, from, to string, expenseDate time.Time) (*entity.ConversionResult, error) {
	if from == to {
		return &entity.ConversionResult{
			Amount:      round2(amount),
			Currency:    to,
			IsEstimated: false,
		}, nil
	}

	day := entity.DateOnly(expenseDate)
	today := entity.DateOnly(s.now())
	historical := !day.After(today)

	var (
		res *entity.RateResolution
		err error
	)
	if historical {
		res, err = s.resolver.ResolveHistorical(ctx, day)
	} else {
		res, err = s.resolver.ResolveLatest(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("conversion from %s to %s failed: %w", from, to, err)
	}

	fromRate, ok := res.Table.Rate(from)
	if !ok {
		return nil, fmt.Errorf("%w: %s not present in rate table for %s", apperrors.ErrUnknownCurrency, from, res.Table.DateKey())
	}
	toRate, ok := res.Table.Rate(to)
	if !ok {
		return nil, fmt.Errorf("%w: %s not present in rate table for %s", apperrors.ErrUnknownCurrency, to, res.Table.DateKey())
	}
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("%w: unusable rate values (%s=%v, %s=%v)", apperrors.ErrUnknownCurrency, from, fromRate, to, toRate)
	}

	converted := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(toRate)).
		Div(decimal.NewFromFloat(fromRate)).
		Round(2)

	result := &entity.ConversionResult{
		Amount:      converted.InexactFloat64(),
		Currency:    to,
		IsEstimated: !historical,
	}

	s.logger.Debug("Conversion completed", map[string]interface{}{
		"from":         from,
		"to":           to,
		"date":         day.Format(entity.DateLayout),
		"rate_date":    res.Table.DateKey(),
		"amount":       amount,
		"converted":    result.Amount,
		"is_estimated": result.IsEstimated,
	})

	return result, nil
}
