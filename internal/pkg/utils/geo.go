package utils

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет радиус поиска в метрах (лимит Places API - 50 км)
func ValidateRadius(radiusM uint) bool {
	return radiusM >= 1 && radiusM <= 50000
}
