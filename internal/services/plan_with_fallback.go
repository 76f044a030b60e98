package services

import (
	"context"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"errors"
	"fmt"
	"log"
)

// Where a trip result came from. Only logs, metrics and events see it.
type PlanSource string

const (
	SourceBackend  PlanSource = "backend"
	SourceFallback PlanSource = "fallback"
)

// PlanWithFallback asks remote for a plan and substitutes the local estimate
// on any failure. A nil remote always estimates locally.
func PlanWithFallback(ctx context.Context, req domain.TripRequest, remote, fallback ports.TripPlanner) (*domain.TripResult, PlanSource, error) {
	if remote != nil {
		res, err := remote.PlanTrip(ctx, req)
		if err == nil && res != nil {
			return res, SourceBackend, nil
		}
		if err == nil {
			err = errors.New("empty response")
		}
		log.Printf("planner unavailable, using local estimate: err=%v", err)
	}

	res, err := fallback.PlanTrip(ctx, req)
	if err != nil {
		return nil, SourceFallback, fmt.Errorf("plan with fallback: %w", err)
	}
	return res, SourceFallback, nil
}
