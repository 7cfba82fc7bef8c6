package backend

import "errors"

var (
	// ErrCurrencyExists reports a /load conflict: the currency is already stored.
	ErrCurrencyExists = errors.New("backend: currency already exists")
	// ErrCurrencyNotFound reports a missing currency on update, delete, convert or rate.
	ErrCurrencyNotFound = errors.New("backend: currency not found")
	// ErrUnavailable wraps transport failures and unexpected statuses. The
	// caller surfaces it as a generic failure message; no retry is attempted.
	ErrUnavailable = errors.New("backend: service unavailable")
)
