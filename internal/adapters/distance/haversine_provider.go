package distance

import (
	"context"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"math"
)

// Earth radius used for great-circle distances, in miles.
const EarthRadiusMiles = 3956.0

// HaversineMiles returns the great-circle distance between a and b in miles.
func HaversineMiles(a, b domain.Coordinates) float64 {
	lat1, lon1 := a.Lat*math.Pi/180, a.Lon*math.Pi/180
	lat2, lon2 := b.Lat*math.Pi/180, b.Lon*math.Pi/180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * math.Asin(math.Sqrt(h)) * EarthRadiusMiles
}

// HaversineProvider implements DistanceProvider with straight-line
// great-circle distances. It performs no I/O.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{}
}

func (HaversineProvider) GetDistance(_ context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	return ports.DistanceResult{DistanceMiles: HaversineMiles(origin, destination)}, nil
}
