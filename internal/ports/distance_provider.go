package ports

import (
	"context"
	"eld-trip-planner/internal/domain"
)

// Great-circle or road distance between two points.
type DistanceResult struct {
	DistanceMiles float64
}

// Contract for measuring the distance between two coordinates.
type DistanceProvider interface {
	// Return the distance in miles between origin and destination.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
