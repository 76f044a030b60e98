package domain

// An entry of the static city lookup table.
type City struct {
	Name  string  `json:"name"`
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

func (c City) Coordinates() Coordinates { return Coordinates{Lat: c.Lat, Lon: c.Lon} }
