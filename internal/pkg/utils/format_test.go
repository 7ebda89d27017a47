package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{10 * time.Second, "1 min"},
		{90 * time.Second, "2 mins"},
		{15 * time.Minute, "15 mins"},
		{time.Hour, "1 hour"},
		{65 * time.Minute, "1 hour 5 mins"},
		{2*time.Hour + time.Minute, "2 hours 1 min"},
		{27 * time.Hour, "1 day 3 hours"},
		{48 * time.Hour, "2 days"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), tt.in.String())
	}
}

func TestFormatImperialDistance(t *testing.T) {
	assert.Equal(t, "328 ft", FormatImperialDistance(100))
	assert.Equal(t, "1.0 mi", FormatImperialDistance(1609))
	assert.Equal(t, "4.3 mi", FormatImperialDistance(7000))
	assert.Equal(t, "25 mi", FormatImperialDistance(40000))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, ValidateRadius(1))
	assert.True(t, ValidateRadius(50000))
	assert.False(t, ValidateRadius(0))
	assert.False(t, ValidateRadius(50001))
	assert.True(t, ValidateCoordinates(37.78, -122.41))
	assert.False(t, ValidateCoordinates(-91, 0))
}
