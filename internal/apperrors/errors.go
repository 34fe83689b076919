package apperrors

import "errors"

// ErrInvalidDate indicates a date that historical resolution cannot serve:
// today, the future, or an unparsable value.
var ErrInvalidDate = errors.New("invalid date")

// ErrProviderUnavailable indicates that the external rate provider could not
// deliver a usable rate table (network failure, non-2xx status, bad body).
var ErrProviderUnavailable = errors.New("rate provider unavailable")

// ErrNoDataAvailable indicates that latest-rate resolution failed.
var ErrNoDataAvailable = errors.New("no rate data available")

// ErrUnknownCurrency indicates a currency code absent from a resolved table.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrDuplicateDate is returned by the rate store when a table for the
// requested date already exists. It is benign on the write path: callers
// receive the stored table alongside it.
var ErrDuplicateDate = errors.New("rate table already stored for date")

// ErrNotFound indicates that a requested record could not be found.
var ErrNotFound = errors.New("record not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")
