package ports

import (
	"context"
	"eld-trip-planner/internal/domain"
)

// Contract for resolving a free-text location into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (domain.Coordinates, error)
}
