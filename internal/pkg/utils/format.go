package utils

import (
	"fmt"
	"math"
	"time"
)

const metersPerMile = 1609.344

// FormatDuration renders a travel time the way the Google web services do
// in their "text" fields: "1 min", "15 mins", "1 hour 5 mins", "2 days 3 hours".
func FormatDuration(d time.Duration) string {
	mins := int(math.Round(d.Minutes()))
	if mins < 1 {
		mins = 1
	}

	if mins < 60 {
		return plural(mins, "min")
	}

	hours := mins / 60
	mins = mins % 60
	if hours < 24 {
		if mins == 0 {
			return plural(hours, "hour")
		}
		return plural(hours, "hour") + " " + plural(mins, "min")
	}

	days := hours / 24
	hours = hours % 24
	if hours == 0 {
		return plural(days, "day")
	}
	return plural(days, "day") + " " + plural(hours, "hour")
}

// FormatImperialDistance renders meters as "820 ft", "1.2 mi" or "24 mi".
func FormatImperialDistance(meters float64) string {
	miles := meters / metersPerMile
	switch {
	case miles < 0.1:
		return fmt.Sprintf("%d ft", int(math.Round(meters*3.28084)))
	case miles < 10:
		return fmt.Sprintf("%.1f mi", miles)
	default:
		return fmt.Sprintf("%d mi", int(math.Round(miles)))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
