package dto

// PlacesSearchRequest - параметры GET /places/:keyword.
// Поля без query-параметра остаются со значениями по умолчанию.
type PlacesSearchRequest struct {
	Keyword string  `json:"keyword" query:"-" validate:"required,max=100"`
	Lat     float64 `json:"lat" query:"lat" validate:"min=-90,max=90"`
	Long    float64 `json:"long" query:"long" validate:"min=-180,max=180"`
	Radius  uint    `json:"radius" query:"radius" validate:"min=1,max=50000"` // meters
	Mode    string  `json:"mode" query:"mode"`
	Date    string  `json:"date" query:"date" validate:"departure"`
	Size    int     `json:"size" query:"size" validate:"min=1"` // 200 только значение по умолчанию

	// OnBatchDone вызывается после каждого батча distance matrix (CLI progress bar)
	OnBatchDone func(done, total int) `json:"-" query:"-"`
}

// PlaceDetailsRequest - параметры GET /places/details/:placeId
type PlaceDetailsRequest struct {
	PlaceID string `json:"place_id" validate:"required,max=512"`
}
