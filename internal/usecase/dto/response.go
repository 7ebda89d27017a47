package dto

// PlaceDetailsResponse - формат ответа legacy-маршрута деталей места
type PlaceDetailsResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
