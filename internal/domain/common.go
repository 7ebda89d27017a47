package domain

import "fmt"

// Coordinate - географическая точка в формате провайдера ({lat, lng})
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns the "lat,lng" form accepted by the Google web services.
func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

// Valid reports whether the coordinate is inside WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
