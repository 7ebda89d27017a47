package usecase

import (
	"github.com/traveller-backend/internal/domain"
)

// batchResult - ответ провайдера для одного батча
type batchResult struct {
	matrix *domain.DistanceMatrix
	err    error
}

// truncateCandidates clips the discovery list to the requested size.
func truncateCandidates(candidates []domain.PlaceCandidate, size int) []domain.PlaceCandidate {
	if size > 0 && len(candidates) > size {
		return candidates[:size]
	}
	return candidates
}

// chunkCandidates splits candidates into ceil(len/size) batches, batch i
// holding candidates [size*i, size*(i+1)) in discovery order.
func chunkCandidates(candidates []domain.PlaceCandidate, size int) [][]domain.PlaceCandidate {
	if size < 1 {
		size = 1
	}

	batches := make([][]domain.PlaceCandidate, 0, (len(candidates)+size-1)/size)
	for start := 0; start < len(candidates); start += size {
		end := start + size
		if end > len(candidates) {
			end = len(candidates)
		}
		batches = append(batches, candidates[start:end:end])
	}
	return batches
}

// mergeBatches flattens batch responses in batch order. Every element carries
// the candidate it belongs to, so unreachable entries are simply skipped and
// never shift the coordinates of their neighbours.
func mergeBatches(batches [][]domain.PlaceCandidate, results []batchResult) ([]domain.TravelRecord, []domain.BatchOutcome) {
	records := make([]domain.TravelRecord, 0)
	outcomes := make([]domain.BatchOutcome, 0, len(batches))

	for i, batch := range batches {
		outcome := domain.BatchOutcome{Index: i, Size: len(batch), Status: domain.BatchOK}
		res := results[i]

		switch {
		case res.err != nil:
			outcome.Status = domain.ClassifyBatchError(res.err)
			outcome.Error = res.err.Error()
		case res.matrix == nil || len(res.matrix.Elements) != len(batch):
			outcome.Status = domain.BatchMalformed
			outcome.Error = "element count does not match batch size"
		default:
			for _, el := range res.matrix.Elements {
				if !el.Reachable() {
					continue
				}
				records = append(records, toTravelRecord(el))
				outcome.Reachable++
			}
			if outcome.Reachable == 0 {
				outcome.Status = domain.BatchEmpty
			}
		}

		outcomes = append(outcomes, outcome)
	}

	return records, outcomes
}

func toTravelRecord(el domain.DistanceElement) domain.TravelRecord {
	name := el.Address
	if name == "" {
		name = el.Candidate.Name
	}

	return domain.TravelRecord{
		PlaceID:        el.Candidate.PlaceID,
		Name:           name,
		Time:           el.DurationText,
		Location:       el.Candidate.Location,
		Distance:       el.DistanceText,
		MetricDistance: el.DistanceMeters,
	}
}
