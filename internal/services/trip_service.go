package services

import (
	"context"
	"eld-trip-planner/internal/clock"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"log"
)

// PlanMetrics receives planning outcomes. Implemented by metrics.Collector.
type PlanMetrics interface {
	TripPlanned(source string)
	PlannerFailed()
}

// TripService runs one form submission end to end: plan with fallback, then
// record and announce the outcome. Remote, Events and Metrics are optional.
type TripService struct {
	Remote   ports.TripPlanner
	Fallback ports.TripPlanner
	Events   ports.EventPublisher
	Metrics  PlanMetrics
	Clock    clock.Clock
}

func (s *TripService) Plan(ctx context.Context, req domain.TripRequest) (*domain.TripResult, error) {
	res, source, err := PlanWithFallback(ctx, req, s.Remote, s.Fallback)
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		if source == SourceFallback && s.Remote != nil {
			s.Metrics.PlannerFailed()
		}
		s.Metrics.TripPlanned(string(source))
	}

	if s.Events != nil {
		ev := ports.TripPlannedEvent{
			TripID:           res.TripID,
			Source:           string(source),
			TotalDistance:    res.Route.TotalDistance,
			TotalDrivingTime: res.Route.TotalDrivingTime,
			Days:             len(res.ELDLogs),
			PlannedAt:        nowFrom(s.Clock).UTC(),
		}
		// Best effort: the user already has a result.
		if err := s.Events.PublishTripPlanned(ctx, ev); err != nil {
			log.Printf("publish trip event failed: trip_id=%s err=%v", res.TripID, err)
		}
	}
	return res, nil
}
