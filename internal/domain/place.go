package domain

// PlaceCandidate - место, найденное на шаге discovery.
// Порядок кандидатов в списке сохраняется до самого ответа клиенту.
type PlaceCandidate struct {
	PlaceID  string     `json:"place_id"`
	Name     string     `json:"name"`
	Location Coordinate `json:"location"`
}

// NearbyQuery - параметры поиска мест вокруг точки
type NearbyQuery struct {
	Keyword  string
	Location Coordinate
	RadiusM  uint
	Limit    int
}

// PlaceDetails - краткая информация о месте
type PlaceDetails struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}
