package domain

// One driven segment between two named locations.
type RouteLeg struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	DistanceMiles float64        `json:"distance_miles"`
	DurationHours float64        `json:"duration_hours"`
	Coordinates   [2]Coordinates `json:"coordinates"`
}

// Rest break kinds reported on a route.
const (
	RestThirtyMinute = "30_minute_break"
	RestTenHour      = "10_hour_break"
)

// A break the driver has to take somewhere along the route.
type RestStop struct {
	Type     string  `json:"type"`
	Duration float64 `json:"duration"`
	Reason   string  `json:"reason"`
}

// Aggregate of the legs of a trip.
// Route is immutable planning data; the map view is a pure projection of it.
type Route struct {
	Legs              []RouteLeg    `json:"legs"`
	TotalDistance     float64       `json:"total_distance"`
	TotalDrivingTime  float64       `json:"total_driving_time"`
	FuelStops         int           `json:"fuel_stops"`
	RequiredRestStops []RestStop    `json:"required_rest_stops"`
	AllCoordinates    []Coordinates `json:"all_coordinates"`
}
