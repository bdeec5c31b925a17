package domain

import "errors"

// ErrConnection is returned by the loader when the listings store cannot be
// reached or the connection is refused.
// Handlers should map this to HTTP 503 Service Unavailable.
var ErrConnection = errors.New("store unreachable")

// ErrQuery is returned when the store rejects the read query, most commonly
// because the requested column list names a column the store does not have.
// Handlers should map this to HTTP 500.
var ErrQuery = errors.New("query error")

// ErrFilter is returned by the filter builder for malformed selections
// (e.g. a range whose min is greater than its max).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrFilter = errors.New("filter error")

// ErrLowSampleSize is returned when too few points survive filtering to fit a
// trend curve or draw a chart.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrLowSampleSize = errors.New("low sample size")

// ErrValidation is returned for request input rejected before it reaches the
// pipeline (e.g. a non-numeric year bound).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
