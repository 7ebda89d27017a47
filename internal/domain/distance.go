package domain

import "time"

// ElementStatus - статус отдельного элемента distance matrix
type ElementStatus string

const (
	ElementOK          ElementStatus = "OK"
	ElementZeroResults ElementStatus = "ZERO_RESULTS"
	ElementNotFound    ElementStatus = "NOT_FOUND"
)

// DistanceMatrixRequest - one origin against a batch of destinations.
type DistanceMatrixRequest struct {
	Origin        Coordinate
	Destinations  []PlaceCandidate
	Mode          TravelMode
	DepartureTime string
}

// DistanceElement is a single origin->destination cell. Candidate is the
// destination it was computed for, so results never need index arithmetic
// to be re-associated with discovery output.
type DistanceElement struct {
	Candidate      PlaceCandidate
	Address        string
	Status         ElementStatus
	Duration       time.Duration
	DurationText   string
	DistanceText   string
	DistanceMeters int
}

// Reachable reports whether the provider found a route to the destination.
func (e DistanceElement) Reachable() bool {
	return e.Status == ElementOK
}

// DistanceMatrix - ответ провайдера для одного батча
type DistanceMatrix struct {
	Elements []DistanceElement
}
