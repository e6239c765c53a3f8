package types

import "errors"

var (
	// ErrUpstreamUnavailable wraps non-success responses and transport
	// failures from any external API.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrNoData              = errors.New("no data found")
	ErrUnresolvedEntity    = errors.New("entity could not be resolved")
	ErrInsufficientData    = errors.New("insufficient data")
)
