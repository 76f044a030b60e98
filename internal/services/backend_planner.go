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
)

const (
	// Single-day plans start at 06:00.
	singleDayStartSlot = 24
	inspectionSlots    = 2
	// One hour at the pickup and one at the drop-off.
	dockSlots = 4
)

// BackendPlanner serves the planning endpoint. Unlike the Estimator it keeps
// leg figures unrounded, lays out a single-day plan when the trip fits in one
// driving day, and checks the daily and cycle limits.
type BackendPlanner struct {
	Geocoder ports.Geocoder
	Distance ports.DistanceProvider
	Clock    clock.Clock
	NewID    func() string
}

func (p *BackendPlanner) PlanTrip(ctx context.Context, req domain.TripRequest) (res *domain.TripResult, err error) {
	defer obs.Time(ctx, "backend.PlanTrip")(&err)

	res, err = PlanTripBackend(ctx, req, p.Geocoder, p.Distance, nowFrom(p.Clock))
	if err != nil {
		return nil, err
	}
	res.TripID = newTripID(p.NewID)
	return res, nil
}

// PlanTripBackend builds the full planning response for req.
func PlanTripBackend(ctx context.Context, req domain.TripRequest, geocoder ports.Geocoder, provider ports.DistanceProvider, start time.Time) (*domain.TripResult, error) {
	stops, err := resolveStops(ctx, req, geocoder)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	legs := make([]domain.RouteLeg, 0, 2)
	for i := 0; i+1 < len(stops); i++ {
		miles, err := legMiles(ctx, provider, stops[i], stops[i+1])
		if err != nil {
			return nil, fmt.Errorf("plan trip: %w", err)
		}
		legs = append(legs, newLeg(stops[i], stops[i+1], miles, miles/assumedSpeedMph))
	}

	route := domain.Route{Legs: legs, AllCoordinates: stopCoordinates(stops)}
	for _, l := range legs {
		route.TotalDistance += l.DistanceMiles
		route.TotalDrivingTime += l.DurationHours
	}
	route.FuelStops = FuelStops(route.TotalDistance, backendFuelIntervalMiles)
	route.RequiredRestStops = BackendRestStops(route.TotalDrivingTime)

	var logs []domain.DailyLog
	if route.TotalDrivingTime <= domain.DailyDrivingLimitHours {
		logs = []domain.DailyLog{singleDayLog(req, route, start)}
	} else {
		logs = multiDayLogs(route, start)
	}

	return &domain.TripResult{
		Route:             route,
		ELDLogs:           logs,
		ComplianceSummary: CheckCompliance(req.CurrentCycleHours, logs),
	}, nil
}

// singleDayLog lays out the whole trip on one sheet starting at 06:00:
// pre-trip inspection, drive to pickup, pickup, an optional 30-minute break,
// drive to drop-off, drop-off and post-trip inspection.
func singleDayLog(req domain.TripRequest, route domain.Route, start time.Time) domain.DailyLog {
	t := domain.NewTimeline()
	var remarks []domain.Remark
	mark := func(slot int, loc string, s domain.DutyStatus, activity string) {
		remarks = append(remarks, domain.Remark{Time: domain.SlotTime(slot), Location: loc, Status: s, Activity: activity})
	}

	cur := singleDayStartSlot
	mark(cur, req.CurrentLocation, domain.OnDuty, "Pre-trip inspection")
	t.Fill(cur, cur+inspectionSlots, domain.OnDuty)
	cur += inspectionSlots

	toPickup := legSlots(route.Legs, 0)
	mark(cur, req.CurrentLocation, domain.Driving, "Driving to pickup")
	t.Fill(cur, cur+toPickup, domain.Driving)
	cur += toPickup

	mark(cur, req.PickupLocation, domain.OnDuty, "Pickup")
	t.Fill(cur, cur+dockSlots, domain.OnDuty)
	cur += dockSlots

	if float64(toPickup)*domain.SlotHours >= breakAfterDrivingHours {
		mark(cur, req.PickupLocation, domain.OffDuty, "30-minute break")
		t.Fill(cur, cur+breakSlots, domain.OffDuty)
		cur += breakSlots
	}

	toDropoff := legSlots(route.Legs, 1)
	mark(cur, req.PickupLocation, domain.Driving, "Driving to delivery")
	t.Fill(cur, cur+toDropoff, domain.Driving)
	cur += toDropoff

	mark(cur, req.DropoffLocation, domain.OnDuty, "Delivery")
	t.Fill(cur, cur+dockSlots, domain.OnDuty)
	cur += dockSlots

	mark(cur, req.DropoffLocation, domain.OnDuty, "Post-trip inspection")
	t.Fill(cur, cur+inspectionSlots, domain.OnDuty)
	cur += inspectionSlots

	mark(cur, req.DropoffLocation, domain.OffDuty, "Off duty")

	return domain.NewDailyLog(start.Format(dateLayout), int(route.TotalDistance), t, remarks)
}

// legSlots returns the quarter hours needed to drive leg i, rounded up.
func legSlots(legs []domain.RouteLeg, i int) int {
	if i >= len(legs) {
		return 0
	}
	return int(math.Ceil(legs[i].DurationHours * domain.SlotsPerHour))
}

// multiDayLogs spreads driving over as many days as the 11-hour limit needs,
// filling each day up to the limit and leaving the remainder to the last.
func multiDayLogs(route domain.Route, start time.Time) []domain.DailyLog {
	days := DaysNeeded(route.TotalDrivingTime)
	dailyMiles := int(route.TotalDistance / float64(days))

	logs := make([]domain.DailyLog, 0, days)
	for day := 0; day < days; day++ {
		driving := min(float64(domain.DailyDrivingLimitHours), route.TotalDrivingTime-float64(day)*domain.DailyDrivingLimitHours)

		t := domain.NewTimeline()
		t.Fill(0, sleepSlots, domain.Sleeper)
		cur := sleepSlots
		t.Fill(cur, cur+inspectionSlots, domain.OnDuty)
		cur += inspectionSlots
		driveInRuns(&t, cur, int(driving*domain.SlotsPerHour))

		remarks := []domain.Remark{
			{Time: domain.SlotTime(sleepSlots), Location: "En route", Status: domain.OnDuty, Activity: fmt.Sprintf("Day %d pre-trip", day+1)},
			{Time: domain.SlotTime(cur), Location: "En route", Status: domain.Driving, Activity: fmt.Sprintf("Driving day %d", day+1)},
		}

		date := start.AddDate(0, 0, day).Format(dateLayout)
		logs = append(logs, domain.NewDailyLog(date, dailyMiles, t, remarks))
	}
	return logs
}

// CheckCompliance evaluates logs against the 11-hour driving limit, the
// 14-hour window and the 70-hour cycle given hours already used.
func CheckCompliance(cycleHours float64, logs []domain.DailyLog) domain.ComplianceSummary {
	violations := []string{}
	for _, l := range logs {
		if l.DrivingHours > domain.DailyDrivingLimitHours {
			violations = append(violations, fmt.Sprintf("Driving limit exceeded on %s: %.2f hours", l.Date, l.DrivingHours))
		}
		if window := l.DrivingHours + l.OnDutyHours; window > domain.DailyWindowHours {
			violations = append(violations, fmt.Sprintf("14-hour window exceeded on %s: %.2f hours", l.Date, window))
		}
	}

	driving, onDuty := logTotals(logs)
	projected := round1(cycleHours + onDuty)
	if projected > domain.CycleLimitHours {
		violations = append(violations, fmt.Sprintf("70-hour cycle limit would be exceeded: %.1f hours", projected))
	}

	return domain.ComplianceSummary{
		TotalDrivingHours:   driving,
		TotalOnDutyHours:    onDuty,
		ProjectedCycleHours: projected,
		Violations:          violations,
		Warnings:            cycleWarnings(projected),
		Compliant:           len(violations) == 0,
	}
}
