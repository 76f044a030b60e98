package services

import (
	"context"
	"eld-trip-planner/internal/clock"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/platform/obs"
	"eld-trip-planner/internal/ports"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Estimator produces a trip result without the planning backend.
// It implements ports.TripPlanner.
type Estimator struct {
	Geocoder ports.Geocoder
	Distance ports.DistanceProvider
	Clock    clock.Clock
	NewID    func() string
}

func (e *Estimator) PlanTrip(ctx context.Context, req domain.TripRequest) (res *domain.TripResult, err error) {
	defer obs.Time(ctx, "estimator.PlanTrip")(&err)

	res, err = EstimateTrip(ctx, req, e.Geocoder, e.Distance, nowFrom(e.Clock))
	if err != nil {
		return nil, err
	}
	res.TripID = newTripID(e.NewID)
	return res, nil
}

// EstimateTrip computes a route, one daily log per driving day and a
// compliance summary locally.
//
// Legs are rounded to the mile and to a tenth of an hour at 60 mph. Every day
// gets the same share of the total driving time and miles; log dates start at
// start and advance one calendar day each.
func EstimateTrip(ctx context.Context, req domain.TripRequest, geocoder ports.Geocoder, provider ports.DistanceProvider, start time.Time) (*domain.TripResult, error) {
	stops, err := resolveStops(ctx, req, geocoder)
	if err != nil {
		return nil, fmt.Errorf("estimate trip: %w", err)
	}

	legs := make([]domain.RouteLeg, 0, 2)
	for i := 0; i+1 < len(stops); i++ {
		miles, err := legMiles(ctx, provider, stops[i], stops[i+1])
		if err != nil {
			return nil, fmt.Errorf("estimate trip: %w", err)
		}
		miles = math.Round(miles)
		legs = append(legs, newLeg(stops[i], stops[i+1], miles, round1(miles/assumedSpeedMph)))
	}

	route := domain.Route{Legs: legs, AllCoordinates: stopCoordinates(stops)}
	for _, l := range legs {
		route.TotalDistance += l.DistanceMiles
		route.TotalDrivingTime += l.DurationHours
	}
	route.TotalDrivingTime = round1(route.TotalDrivingTime)
	route.FuelStops = FuelStops(route.TotalDistance, fallbackFuelIntervalMiles)
	route.RequiredRestStops = FallbackRestStops(route.TotalDrivingTime)

	logs := estimateLogs(req, route, start)

	return &domain.TripResult{
		Route:             route,
		ELDLogs:           logs,
		ComplianceSummary: estimateCompliance(req.CurrentCycleHours, logs),
	}, nil
}

// A stop is a named location with its resolved coordinates.
type stop struct {
	name   string
	coords domain.Coordinates
}

func resolveStops(ctx context.Context, req domain.TripRequest, geocoder ports.Geocoder) ([]stop, error) {
	names := []string{req.CurrentLocation, req.PickupLocation, req.DropoffLocation}
	stops := make([]stop, 0, len(names))
	for _, name := range names {
		c, err := geocoder.Geocode(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", name, err)
		}
		stops = append(stops, stop{name: name, coords: c})
	}
	return stops, nil
}

func legMiles(ctx context.Context, provider ports.DistanceProvider, from, to stop) (float64, error) {
	d, err := provider.GetDistance(ctx, from.coords, to.coords)
	if err != nil {
		return 0, fmt.Errorf("distance %q -> %q: %w", from.name, to.name, err)
	}
	return d.DistanceMiles, nil
}

func newLeg(from, to stop, miles, hours float64) domain.RouteLeg {
	return domain.RouteLeg{
		From:          from.name,
		To:            to.name,
		DistanceMiles: miles,
		DurationHours: hours,
		Coordinates:   [2]domain.Coordinates{from.coords, to.coords},
	}
}

func stopCoordinates(stops []stop) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.coords)
	}
	return out
}

func estimateLogs(req domain.TripRequest, route domain.Route, start time.Time) []domain.DailyLog {
	// A zero-length trip still yields one (empty) day.
	days := max(DaysNeeded(route.TotalDrivingTime), 1)
	dailyDriving := route.TotalDrivingTime / float64(days)
	dailyMiles := route.TotalDistance / float64(days)

	var leg1 float64
	if len(route.Legs) > 0 {
		leg1 = route.Legs[0].DistanceMiles
	}
	pickupDay := 1
	if dailyMiles > 0 {
		// A zero-mile first leg yields day 0, which matches no log.
		pickupDay = int(math.Ceil(leg1 / dailyMiles))
	}

	logs := make([]domain.DailyLog, 0, days)
	for day := 1; day <= days; day++ {
		slots := FallbackTimeline(dailyDriving, fallbackOnDutyHours)

		var remarks []domain.Remark
		if day == 1 {
			remarks = append(remarks,
				domain.Remark{Time: domain.SlotTime(sleepSlots), Location: req.CurrentLocation, Status: domain.OnDuty, Activity: "Pre-trip inspection"},
				domain.Remark{Time: domain.SlotTime(fallbackDriveStart), Location: req.CurrentLocation, Status: domain.Driving, Activity: "Driving to pickup"},
			)
		} else {
			remarks = append(remarks,
				domain.Remark{Time: domain.SlotTime(sleepSlots), Location: "En route", Status: domain.OnDuty, Activity: fmt.Sprintf("Day %d pre-trip", day)},
				domain.Remark{Time: domain.SlotTime(fallbackDriveStart), Location: "En route", Status: domain.Driving, Activity: "Continue trip"},
			)
		}

		if day == pickupDay {
			offset := leg1 - float64(day-1)*dailyMiles
			slot := fallbackDriveStart + int(math.Floor(offset/assumedSpeedMph*domain.SlotsPerHour))
			slot = min(max(slot, fallbackDriveStart), domain.SlotsPerDay-1)
			remarks = append(remarks,
				domain.Remark{Time: domain.SlotTime(slot), Location: req.PickupLocation, Status: domain.OnDuty, Activity: "Pickup"},
				domain.Remark{Time: domain.SlotTime(slot + domain.SlotsPerHour), Location: req.PickupLocation, Status: domain.Driving, Activity: "Driving to delivery"},
			)
		}

		if day == days {
			end := slots.LastIndex(domain.Driving) + 1
			if end == 0 {
				end = fallbackDriveStart
			}
			remarks = append(remarks,
				domain.Remark{Time: domain.SlotTime(end), Location: req.DropoffLocation, Status: domain.OnDuty, Activity: "Delivery"},
				domain.Remark{Time: domain.SlotTime(end + domain.SlotsPerHour), Location: req.DropoffLocation, Status: domain.OffDuty, Activity: "Trip complete"},
			)
		}

		date := start.AddDate(0, 0, day-1).Format(dateLayout)
		logs = append(logs, domain.NewDailyLog(date, int(math.Round(dailyMiles)), slots, remarks))
	}
	return logs
}

// First driving slot of a fallback day: after the sleeper block and the
// on-duty allowance.
const fallbackDriveStart = sleepSlots + int(fallbackOnDutyHours*domain.SlotsPerHour)

func estimateCompliance(cycleHours float64, logs []domain.DailyLog) domain.ComplianceSummary {
	driving, onDuty := logTotals(logs)
	projected := round1(cycleHours + onDuty)

	return domain.ComplianceSummary{
		TotalDrivingHours:   driving,
		TotalOnDutyHours:    onDuty,
		ProjectedCycleHours: projected,
		Violations:          []string{},
		Warnings:            cycleWarnings(projected),
		Compliant:           true,
	}
}

// logTotals sums driving hours and on-duty hours (driving included) over logs.
func logTotals(logs []domain.DailyLog) (driving, onDuty float64) {
	for _, l := range logs {
		driving += l.DrivingHours
		onDuty += l.DrivingHours + l.OnDutyHours
	}
	return round1(driving), round1(onDuty)
}

func cycleWarnings(projected float64) []string {
	warnings := []string{}
	if projected > domain.CycleWarningHours {
		warnings = append(warnings, fmt.Sprintf("Approaching cycle limit: %.1f/%d hours", projected, domain.CycleLimitHours))
	}
	return warnings
}

func nowFrom(c clock.Clock) time.Time {
	if c == nil {
		return time.Now()
	}
	return c.Now()
}

func newTripID(gen func() string) string {
	if gen == nil {
		return uuid.NewString()
	}
	return gen()
}
