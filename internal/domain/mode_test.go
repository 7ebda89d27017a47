package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/traveller-backend/internal/domain"
)

func TestParseTravelMode(t *testing.T) {
	tests := []struct {
		in   string
		want domain.TravelMode
	}{
		{"car", domain.ModeDriving},
		{"bike", domain.ModeCycling},
		{"walk", domain.ModeWalking},
		{"transit", domain.ModeTransit},
		{"", domain.ModeTransit},
		{"skateboard", domain.ModeTransit},
		{"BIKE", domain.ModeTransit},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseTravelMode(tt.in))
		})
	}
}

func TestClassifyBatchError(t *testing.T) {
	assert.Equal(t, domain.BatchOK, domain.ClassifyBatchError(nil))
	assert.Equal(t, domain.BatchRateLimited, domain.ClassifyBatchError(fmt.Errorf("call: %w", domain.ErrRateLimited)))
	assert.Equal(t, domain.BatchMalformed, domain.ClassifyBatchError(fmt.Errorf("decode: %w", domain.ErrMalformedResponse)))
	assert.Equal(t, domain.BatchEmpty, domain.ClassifyBatchError(domain.ErrNoResults))
	assert.Equal(t, domain.BatchUnsupported, domain.ClassifyBatchError(domain.ErrUnsupportedMode))
	assert.Equal(t, domain.BatchTransportError, domain.ClassifyBatchError(errors.New("connection reset")))
}

func TestSearchResult_FailedBatches(t *testing.T) {
	r := &domain.SearchResult{Batches: []domain.BatchOutcome{
		{Index: 0, Status: domain.BatchOK},
		{Index: 1, Status: domain.BatchEmpty},
		{Index: 2, Status: domain.BatchTransportError},
		{Index: 3, Status: domain.BatchRateLimited},
	}}

	assert.Equal(t, 2, r.FailedBatches())
}

func TestCoordinate(t *testing.T) {
	c := domain.Coordinate{Lat: 37.7825177, Lng: -122.4106772}
	assert.True(t, c.Valid())
	assert.Equal(t, "37.782518,-122.410677", c.String())
	assert.False(t, domain.Coordinate{Lat: 91}.Valid())
}
