package domain

import (
	"encoding/json"
	"fmt"
)

// Immutable geographic coordinates in degrees.
// Serialized as a [lat, lon] pair, the shape the map view consumes.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon].
func (c Coordinates) LatLng() [2]float64 { return [2]float64{c.Lat, c.Lon} }

func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.LatLng())
}

func (c *Coordinates) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode coordinates: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode coordinates: want [lat, lon], got %d values", len(pair))
	}
	c.Lat, c.Lon = pair[0], pair[1]
	return nil
}

// Bounds is the smallest lat/lon box containing a set of coordinates.
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// BoundsOf returns the bounding box of coords. ok is false when coords is empty.
func BoundsOf(coords []Coordinates) (b Bounds, ok bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}

	b = Bounds{South: coords[0].Lat, North: coords[0].Lat, West: coords[0].Lon, East: coords[0].Lon}
	for _, c := range coords[1:] {
		b.South = min(b.South, c.Lat)
		b.North = max(b.North, c.Lat)
		b.West = min(b.West, c.Lon)
		b.East = max(b.East, c.Lon)
	}
	return b, true
}

// Contains reports whether c lies inside the box (edges inclusive).
func (b Bounds) Contains(c Coordinates) bool {
	return c.Lat >= b.South && c.Lat <= b.North && c.Lon >= b.West && c.Lon <= b.East
}
