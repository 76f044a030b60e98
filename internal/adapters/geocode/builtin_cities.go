package geocode

import "eld-trip-planner/internal/domain"

// BuiltinCities is the lookup table used when no city directory is configured.
// Order matters: the first substring match wins.
var BuiltinCities = []domain.City{
	{Name: "New York", State: "NY", Lat: 40.7128, Lon: -74.0060},
	{Name: "Los Angeles", State: "CA", Lat: 34.0522, Lon: -118.2437},
	{Name: "Chicago", State: "IL", Lat: 41.8781, Lon: -87.6298},
	{Name: "Houston", State: "TX", Lat: 29.7604, Lon: -95.3698},
	{Name: "Phoenix", State: "AZ", Lat: 33.4484, Lon: -112.0740},
	{Name: "Philadelphia", State: "PA", Lat: 39.9526, Lon: -75.1652},
	{Name: "San Antonio", State: "TX", Lat: 29.4241, Lon: -98.4936},
	{Name: "San Diego", State: "CA", Lat: 32.7157, Lon: -117.1611},
	{Name: "Dallas", State: "TX", Lat: 32.7767, Lon: -96.7970},
	{Name: "San Jose", State: "CA", Lat: 37.3382, Lon: -121.8863},
	{Name: "Salt Lake City", State: "UT", Lat: 40.7608, Lon: -111.8910},
	{Name: "Kansas City", State: "MO", Lat: 39.0997, Lon: -94.5786},
	{Name: "Las Vegas", State: "NV", Lat: 36.1699, Lon: -115.1398},
	{Name: "Indianapolis", State: "IN", Lat: 39.7684, Lon: -86.1581},
	{Name: "Jacksonville", State: "FL", Lat: 30.3322, Lon: -81.6557},
	{Name: "Minneapolis", State: "MN", Lat: 44.9778, Lon: -93.2650},
	{Name: "Nashville", State: "TN", Lat: 36.1627, Lon: -86.7816},
	{Name: "Memphis", State: "TN", Lat: 35.1495, Lon: -90.0490},
	{Name: "Atlanta", State: "GA", Lat: 33.7490, Lon: -84.3880},
	{Name: "Detroit", State: "MI", Lat: 42.3314, Lon: -83.0458},
	{Name: "Denver", State: "CO", Lat: 39.7392, Lon: -104.9903},
	{Name: "Seattle", State: "WA", Lat: 47.6062, Lon: -122.3321},
	{Name: "Portland", State: "OR", Lat: 45.5152, Lon: -122.6784},
	{Name: "Austin", State: "TX", Lat: 30.2672, Lon: -97.7431},
	{Name: "Miami", State: "FL", Lat: 25.7617, Lon: -80.1918},
	{Name: "Boston", State: "MA", Lat: 42.3601, Lon: -71.0589},
}
