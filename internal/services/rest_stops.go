package services

import (
	"eld-trip-planner/internal/domain"
	"math"
)

const (
	fallbackFuelIntervalMiles = 800.0
	backendFuelIntervalMiles  = 1000.0
	assumedSpeedMph           = 60.0
	breakAfterDrivingHours    = 8.0
)

var (
	thirtyMinuteBreak = domain.RestStop{
		Type:     domain.RestThirtyMinute,
		Duration: 0.5,
		Reason:   "Required 30-minute break after 8 hours driving",
	}
	tenHourBreak = domain.RestStop{
		Type:     domain.RestTenHour,
		Duration: 10,
		Reason:   "Required 10-hour break - daily driving limit exceeded",
	}
)

// FuelStops returns how many refuelling stops a distance needs at one stop
// per interval miles.
func FuelStops(totalDistance, interval float64) int {
	if totalDistance <= 0 {
		return 0
	}
	return int(math.Ceil(totalDistance / interval))
}

// DaysNeeded returns the number of driving days at the 11-hour daily limit.
func DaysNeeded(totalDrivingTime float64) int {
	if totalDrivingTime <= 0 {
		return 0
	}
	return int(math.Ceil(totalDrivingTime / domain.DailyDrivingLimitHours))
}

// FallbackRestStops lists one 30-minute break when driving exceeds eight
// hours and one 10-hour break for every day after the first.
func FallbackRestStops(totalDrivingTime float64) []domain.RestStop {
	stops := []domain.RestStop{}
	if totalDrivingTime > breakAfterDrivingHours {
		stops = append(stops, thirtyMinuteBreak)
	}
	for i := 1; i < DaysNeeded(totalDrivingTime); i++ {
		stops = append(stops, tenHourBreak)
	}
	return stops
}

// BackendRestStops lists at most one of each break kind.
func BackendRestStops(totalDrivingTime float64) []domain.RestStop {
	stops := []domain.RestStop{}
	if totalDrivingTime > breakAfterDrivingHours {
		stops = append(stops, thirtyMinuteBreak)
	}
	if totalDrivingTime > domain.DailyDrivingLimitHours {
		stops = append(stops, tenHourBreak)
	}
	return stops
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
