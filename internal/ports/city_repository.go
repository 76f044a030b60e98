package ports

import (
	"context"
	"eld-trip-planner/internal/domain"
)

// Port: a boundary for reading the city lookup table from a data source.
type CityRepository interface {
	// Retrieve every city known to the directory.
	ListCities(ctx context.Context) ([]domain.City, error)
}
