package domain

import "errors"

var (
	// ErrNoResults is returned by providers when a query matched nothing.
	ErrNoResults = errors.New("provider returned no results")

	// ErrRateLimited means the provider rejected the call because of its quota.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrMalformedResponse means the provider answered with data that does
	// not line up with the request (missing rows, element count mismatch).
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrUnsupportedMode means the provider cannot route the requested mode.
	ErrUnsupportedMode = errors.New("travel mode not supported by provider")

	// ErrPlaceNotFound is returned by place details lookups.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrAllBatchesFailed is returned when not a single distance batch succeeded.
	ErrAllBatchesFailed = errors.New("all distance batches failed")
)

// ClassifyBatchError maps a distance provider error to a BatchStatus.
func ClassifyBatchError(err error) BatchStatus {
	switch {
	case err == nil:
		return BatchOK
	case errors.Is(err, ErrNoResults):
		return BatchEmpty
	case errors.Is(err, ErrRateLimited):
		return BatchRateLimited
	case errors.Is(err, ErrMalformedResponse):
		return BatchMalformed
	case errors.Is(err, ErrUnsupportedMode):
		return BatchUnsupported
	default:
		return BatchTransportError
	}
}
