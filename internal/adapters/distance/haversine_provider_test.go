package distance

import (
	"context"
	"eld-trip-planner/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chicago    = domain.Coordinates{Lat: 41.8781, Lon: -87.6298}
	newYork    = domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
	losAngeles = domain.Coordinates{Lat: 34.0522, Lon: -118.2437}
)

func TestHaversineMilesKnownPairs(t *testing.T) {
	assert.Equal(t, 0.0, HaversineMiles(chicago, chicago))

	cn := HaversineMiles(chicago, newYork)
	assert.Equal(t, 711.0, math.Round(cn))

	nl := HaversineMiles(newYork, losAngeles)
	assert.InDelta(t, 2444, nl, 2)

	// Symmetric.
	assert.InDelta(t, cn, HaversineMiles(newYork, chicago), 1e-9)
}

func TestHaversineProviderGetDistance(t *testing.T) {
	p := NewHaversineProvider()

	r, err := p.GetDistance(context.Background(), chicago, losAngeles)
	require.NoError(t, err)
	assert.InDelta(t, HaversineMiles(chicago, losAngeles), r.DistanceMiles, 1e-9)
}

func TestMockDistanceProvider(t *testing.T) {
	p := NewMockDistanceProvider([]MockPair{{From: chicago, To: newYork, Miles: 790}})

	r, err := p.GetDistance(context.Background(), chicago, newYork)
	require.NoError(t, err)
	assert.Equal(t, 790.0, r.DistanceMiles)

	_, err = p.GetDistance(context.Background(), newYork, chicago)
	assert.Error(t, err)
}
