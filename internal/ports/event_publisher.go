package ports

import (
	"context"
	"time"
)

// Announcement emitted once a trip result has been produced.
type TripPlannedEvent struct {
	TripID           string    `json:"trip_id"`
	Source           string    `json:"source"`
	TotalDistance    float64   `json:"total_distance"`
	TotalDrivingTime float64   `json:"total_driving_time"`
	Days             int       `json:"days"`
	PlannedAt        time.Time `json:"planned_at"`
}

// Contract for broadcasting trip events to other systems.
type EventPublisher interface {
	PublishTripPlanned(ctx context.Context, ev TripPlannedEvent) error
}
