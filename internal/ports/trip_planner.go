package ports

import (
	"context"
	"eld-trip-planner/internal/domain"
)

// Contract for turning a trip request into a planned route, daily logs and a
// compliance summary.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req domain.TripRequest) (*domain.TripResult, error)
}
