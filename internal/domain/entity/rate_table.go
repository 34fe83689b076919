package entity

import (
	"fmt"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
)

// DateLayout is the canonical calendar-date form used for keys and wire data.
const DateLayout = "2006-01-02"

// DateOnly truncates a timestamp to its calendar date in UTC. All date
// comparisons in the rate subsystem happen at this granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RateTable holds the full set of currency rates captured for one calendar
// date, relative to the provider's fixed base currency. Tables are immutable
// once stored: the market snapshot for a past date does not change.
type RateTable struct {
	// Date is the calendar date the rates apply to, and the table's key.
	Date time.Time `json:"date"`
	// RetrievedAt records when the table was fetched, which may be any
	// time on or after Date.
	RetrievedAt time.Time `json:"retrieved_at"`
	// Rates maps currency code to rate value. Keys are provider-defined
	// and not validated against any application whitelist at store time.
	Rates map[string]float64 `json:"rates"`
}

// DateKey returns the table's date in canonical YYYY-MM-DD form.
func (t *RateTable) DateKey() string {
	return t.Date.Format(DateLayout)
}

// Rate looks up the rate for a currency code.
func (t *RateTable) Rate(code string) (float64, bool) {
	r, ok := t.Rates[code]
	return r, ok
}

// Validate rejects tables that must never reach the store.
func (t *RateTable) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: rate table has no date", apperrors.ErrValidation)
	}
	if len(t.Rates) == 0 {
		return fmt.Errorf("%w: rate table for %s has no rates", apperrors.ErrValidation, t.DateKey())
	}
	return nil
}

// RateResolution is the outcome of resolving a rate table for a date.
type RateResolution struct {
	Table *RateTable
	// CacheHit is true when the table came straight from the store, false
	// when it was fetched from the provider during this resolution.
	CacheHit bool
}
