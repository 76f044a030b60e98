package distance

import (
	"context"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"fmt"
)

type MockPair struct {
	From, To domain.Coordinates
	Miles    float64
}

// MockDistanceProvider answers fixed distances for known coordinate pairs.
type MockDistanceProvider struct {
	m map[[2]domain.Coordinates]ports.DistanceResult
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Coordinates]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coordinates{p.From, p.To}] = ports.DistanceResult{DistanceMiles: p.Miles}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	r, ok := p.m[[2]domain.Coordinates{origin, destination}]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %v -> %v", origin.LatLng(), destination.LatLng())
	}

	return r, nil
}
