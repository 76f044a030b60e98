package webui

import (
	"eld-trip-planner/internal/domain"
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"
)

// Map defaults: the geographic centre of the contiguous US.
const (
	defaultZoom    = 4
	fitPaddingPx   = 20
	segmentDash    = "10, 5"
	segmentWeight  = 4
	segmentOpacity = 0.8
)

var defaultCenter = [2]float64{39.8283, -98.5795}

// Marker colours for start, pickup and destination.
const (
	colorStart  = "#3B82F6"
	colorPickup = "#10B981"
	colorEnd    = "#EF4444"
)

type MapMarker struct {
	Kind     string     `json:"kind"`
	Label    string     `json:"label"`
	Position [2]float64 `json:"position"`
	Color    string     `json:"color"`
	Title    string     `json:"title"`
	Detail   []string   `json:"detail"`
}

// MapSegment is one leg drawn as a dashed line. Path is a Google encoded
// polyline of the leg's endpoints.
type MapSegment struct {
	Path      string     `json:"path"`
	Color     string     `json:"color"`
	Weight    int        `json:"weight"`
	Opacity   float64    `json:"opacity"`
	DashArray string     `json:"dash_array"`
	Midpoint  [2]float64 `json:"midpoint"`
}

// MapView is everything the browser needs to draw the route.
// Bounds is nil when there are fewer than two coordinates; the viewport then
// stays on Center/Zoom.
type MapView struct {
	Center   [2]float64     `json:"center"`
	Zoom     int            `json:"zoom"`
	Padding  int            `json:"padding"`
	Bounds   *[2][2]float64 `json:"bounds"`
	Markers  []MapMarker    `json:"markers"`
	Segments []MapSegment   `json:"segments"`
}

// NewMapView projects a route onto map primitives.
func NewMapView(r domain.Route) MapView {
	v := MapView{
		Center:   defaultCenter,
		Zoom:     defaultZoom,
		Padding:  fitPaddingPx,
		Markers:  []MapMarker{},
		Segments: []MapSegment{},
	}

	coords := r.AllCoordinates
	if len(coords) > 1 {
		if b, ok := domain.BoundsOf(coords); ok {
			v.Bounds = &[2][2]float64{{b.South, b.West}, {b.North, b.East}}
		}
	}

	leg := func(i int) (domain.RouteLeg, bool) {
		if i < len(r.Legs) {
			return r.Legs[i], true
		}
		return domain.RouteLeg{}, false
	}

	if len(coords) > 0 {
		l, _ := leg(0)
		v.Markers = append(v.Markers, MapMarker{
			Kind: "start", Label: "START", Position: coords[0].LatLng(), Color: colorStart,
			Title: "Start", Detail: []string{l.From, "Current Location"},
		})
	}
	if len(coords) > 1 {
		l, _ := leg(0)
		v.Markers = append(v.Markers, MapMarker{
			Kind: "pickup", Position: coords[1].LatLng(), Color: colorPickup,
			Title: "Pickup", Detail: append([]string{l.To}, legDetail(l)...),
		})
	}
	if len(coords) > 2 {
		l, _ := leg(1)
		v.Markers = append(v.Markers, MapMarker{
			Kind: "destination", Label: "END", Position: coords[2].LatLng(), Color: colorEnd,
			Title: "Destination", Detail: append([]string{l.To}, legDetail(l)...),
		})
	}

	for i, l := range r.Legs {
		color := colorPickup
		if i == 0 {
			color = colorStart
		}
		v.Segments = append(v.Segments, MapSegment{
			Path:      EncodePath(l.Coordinates[:]),
			Color:     color,
			Weight:    segmentWeight,
			Opacity:   segmentOpacity,
			DashArray: segmentDash,
			Midpoint:  midpoint(l.Coordinates[0], l.Coordinates[1]),
		})
	}
	return v
}

// EncodePath encodes coordinates as a Google polyline string.
func EncodePath(coords []domain.Coordinates) string {
	pts := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pts = append(pts, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pts))
}

func legDetail(l domain.RouteLeg) []string {
	return []string{
		fmt.Sprintf("Distance: %d miles", int(math.Round(l.DistanceMiles))),
		fmt.Sprintf("Duration: %s hours", formatHours(l.DurationHours)),
	}
}

func midpoint(a, b domain.Coordinates) [2]float64 {
	return [2]float64{(a.Lat + b.Lat) / 2, (a.Lon + b.Lon) / 2}
}
