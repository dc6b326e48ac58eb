package usecase

import "errors"

var (
	// ErrSymbolNotFound is returned when the requested symbol is absent
	// from the upstream response.
	ErrSymbolNotFound = errors.New("stock symbol not found")

	// ErrRateLimited is returned when the vendor payload carries its
	// rate-limit marker. It is surfaced verbatim, never retried.
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrUpstreamUnavailable is returned when the upstream provider is
	// unreachable, times out, or answers with a server error.
	ErrUpstreamUnavailable = errors.New("upstream data provider unavailable")

	// ErrUpstreamSchema is returned when a vendor payload is missing a
	// required field. This signals a local adapter problem, not user input.
	ErrUpstreamSchema = errors.New("unexpected upstream response shape")
)
