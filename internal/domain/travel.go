package domain

// TravelRecord is what the mobile client receives for every reachable place.
// JSON keys are kept compatible with the existing app.
type TravelRecord struct {
	PlaceID        string     `json:"place_id"`
	Name           string     `json:"name"`
	Time           string     `json:"time"`
	Location       Coordinate `json:"location"`
	Distance       string     `json:"distance"`
	MetricDistance int        `json:"metric distance"`
}

// BatchStatus classifies the outcome of one distance-matrix call.
type BatchStatus string

const (
	BatchOK             BatchStatus = "ok"
	BatchEmpty          BatchStatus = "empty"
	BatchTransportError BatchStatus = "transport_error"
	BatchRateLimited    BatchStatus = "rate_limited"
	BatchMalformed      BatchStatus = "malformed"
	BatchUnsupported    BatchStatus = "unsupported"
)

// BatchOutcome - итог обработки одного батча
type BatchOutcome struct {
	Index     int         `json:"index"`
	Size      int         `json:"size"`
	Status    BatchStatus `json:"status"`
	Reachable int         `json:"reachable"`
	Error     string      `json:"error,omitempty"`
}

// Failed reports whether the batch produced no usable response.
func (o BatchOutcome) Failed() bool {
	return o.Status != BatchOK && o.Status != BatchEmpty
}

// SearchResult - результат пайплайна поиска
type SearchResult struct {
	Records    []TravelRecord `json:"records"`
	Batches    []BatchOutcome `json:"batches"`
	Candidates int            `json:"candidates"`
}

// FailedBatches returns how many batches did not produce a usable response.
func (r *SearchResult) FailedBatches() int {
	n := 0
	for _, b := range r.Batches {
		if b.Failed() {
			n++
		}
	}
	return n
}
