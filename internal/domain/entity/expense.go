package entity

import (
	"fmt"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
)

// Expense represents a single recorded expense in its original currency.
type Expense struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"expense_date"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate ensures the expense meets all requirements. Currency membership
// in a rate table is deliberately not checked here; that happens at
// conversion time against the table actually used.
func (e *Expense) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("%w: title must not be empty", apperrors.ErrValidation)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive value", apperrors.ErrValidation)
	}
	if len(e.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", apperrors.ErrValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: expense date is required", apperrors.ErrValidation)
	}
	return nil
}
