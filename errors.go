package yahoofinance

import "errors"

// Error kinds, matched with errors.Is.
//
// ErrValidation marks bad input rejected before any network call.
// ErrDecode marks a response body that does not have the expected shape,
// which usually means the upstream changed its undocumented format.
// Transport failures and non-2xx statuses are surfaced as-is and carry
// neither sentinel.
var (
	ErrValidation = errors.New("invalid argument")
	ErrDecode     = errors.New("unexpected response format")
)
