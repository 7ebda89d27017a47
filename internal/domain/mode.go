package domain

// TravelMode is the provider-neutral transportation mode.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeCycling TravelMode = "cycling"
	ModeWalking TravelMode = "walking"
	ModeTransit TravelMode = "transit"
)

// DefaultTravelMode is used when the client sends no mode or an unknown one.
const DefaultTravelMode = ModeTransit

var clientModes = map[string]TravelMode{
	"car":     ModeDriving,
	"bike":    ModeCycling,
	"walk":    ModeWalking,
	"transit": ModeTransit,
}

// ParseTravelMode maps the mobile client's mode names (car, bike, walk,
// transit) to a TravelMode. Anything else falls back to transit.
func ParseTravelMode(s string) TravelMode {
	if m, ok := clientModes[s]; ok {
		return m
	}
	return DefaultTravelMode
}
