package geocode

import (
	"context"
	"eld-trip-planner/internal/domain"
	"math/rand/v2"
	"strings"
	"sync"
	"unicode/utf8"
)

// Continental-US box used for coordinates of unknown locations.
const (
	MinLat = 25.0
	MaxLat = 49.0
	MinLon = -125.0
	MaxLon = -66.0
)

// Geographic centre of the contiguous United States.
var USCenter = domain.Coordinates{Lat: 39.8283, Lon: -98.5795}

// Fallback produces coordinates for a location missing from the table.
type Fallback func() domain.Coordinates

// RandomFallback samples a uniform point inside the continental-US box.
// Results are not reproducible across calls. A nil r uses the global source.
func RandomFallback(r *rand.Rand) Fallback {
	var mu sync.Mutex
	next := rand.Float64
	if r != nil {
		next = func() float64 {
			mu.Lock()
			defer mu.Unlock()
			return r.Float64()
		}
	}

	return func() domain.Coordinates {
		lat := MinLat + next()*(MaxLat-MinLat)
		lon := MinLon + next()*(MaxLon-MinLon)
		return domain.Coordinates{Lat: lat, Lon: lon}
	}
}

// FixedFallback always answers c.
func FixedFallback(c domain.Coordinates) Fallback {
	return func() domain.Coordinates { return c }
}

type entry struct {
	name     string
	fullName string
	coords   domain.Coordinates
}

// TableGeocoder resolves free-text locations against a city lookup table.
// A location matches a city case-insensitively, first exactly ("chicago" or
// "chicago, il"), then by substring in either direction. Anything else gets
// the fallback coordinates; Geocode never fails.
//
// The table can be swapped at runtime; the geocoder is safe for concurrent use.
type TableGeocoder struct {
	mu       sync.RWMutex
	entries  []entry
	fallback Fallback
}

func NewTableGeocoder(cities []domain.City, fallback Fallback) *TableGeocoder {
	if fallback == nil {
		fallback = RandomFallback(nil)
	}

	g := &TableGeocoder{fallback: fallback}
	g.Replace(cities)
	return g
}

// normalize ensures consistent matching by lowercasing and collapsing whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Replace swaps the lookup table. Cities with empty names are skipped.
func (g *TableGeocoder) Replace(cities []domain.City) {
	entries := make([]entry, 0, len(cities))
	for _, c := range cities {
		name := normalize(c.Name)
		if name == "" {
			continue
		}

		full := name
		if st := normalize(c.State); st != "" {
			full = name + ", " + st
		}
		entries = append(entries, entry{name: name, fullName: full, coords: c.Coordinates()})
	}

	g.mu.Lock()
	g.entries = entries
	g.mu.Unlock()
}

// Len returns the number of cities in the table.
func (g *TableGeocoder) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// minPartialMatch is the shortest input matched as a fragment of a city name.
const minPartialMatch = 3

// Lookup matches location against the table without applying the fallback.
func (g *TableGeocoder) Lookup(location string) (domain.Coordinates, bool) {
	loc := normalize(location)
	if loc == "" {
		return domain.Coordinates{}, false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, e := range g.entries {
		if loc == e.name || loc == e.fullName {
			return e.coords, true
		}
	}

	// A partial name only matches once it is long enough to be specific:
	// "la" would otherwise land on "philadelphia".
	partial := utf8.RuneCountInString(loc) >= minPartialMatch
	for _, e := range g.entries {
		if strings.Contains(loc, e.name) || (partial && strings.Contains(e.name, loc)) {
			return e.coords, true
		}
	}

	return domain.Coordinates{}, false
}

func (g *TableGeocoder) Geocode(_ context.Context, location string) (domain.Coordinates, error) {
	if c, ok := g.Lookup(location); ok {
		return c, nil
	}
	return g.fallback(), nil
}
