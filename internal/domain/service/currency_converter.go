package service

import (
	"context"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

// CurrencyConverter converts amounts between currencies using the rate
// table appropriate for the expense date.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string, expenseDate time.Time) (*entity.ConversionResult, error)
}
