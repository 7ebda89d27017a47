package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrProviderUnavailable = New(
		"PROVIDER_UNAVAILABLE",
		"Mapping provider request failed",
		http.StatusBadGateway,
	)

	ErrProviderRateLimited = New(
		"PROVIDER_RATE_LIMITED",
		"Mapping provider quota exceeded",
		http.StatusServiceUnavailable,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
