package services

import (
	"context"
	"eld-trip-planner/internal/adapters/distance"
	"eld-trip-planner/internal/adapters/geocode"
	"eld-trip-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	depotA = domain.Coordinates{Lat: 1, Lon: 1}
	depotB = domain.Coordinates{Lat: 2, Lon: 2}
	depotC = domain.Coordinates{Lat: 3, Lon: 3}
)

func depotGeocoder() *geocode.TableGeocoder {
	return geocode.NewTableGeocoder([]domain.City{
		{Name: "Depot A", Lat: depotA.Lat, Lon: depotA.Lon},
		{Name: "Depot B", Lat: depotB.Lat, Lon: depotB.Lon},
		{Name: "Depot C", Lat: depotC.Lat, Lon: depotC.Lon},
	}, geocode.FixedFallback(geocode.USCenter))
}

func depotRequest(cycle float64) domain.TripRequest {
	return domain.TripRequest{
		CurrentLocation:   "Depot A",
		PickupLocation:    "Depot B",
		DropoffLocation:   "Depot C",
		CurrentCycleHours: cycle,
	}
}

func TestPlanTripBackendSingleDay(t *testing.T) {
	req := domain.TripRequest{
		CurrentLocation:   "Dallas",
		PickupLocation:    "Houston",
		DropoffLocation:   "Dallas",
		CurrentCycleHours: 65,
	}

	res, err := PlanTripBackend(context.Background(), req, builtinGeocoder(), distance.NewHaversineProvider(), tripStart)
	require.NoError(t, err)

	r := res.Route
	assert.InDelta(t, 224.64, r.Legs[0].DistanceMiles, 0.01)
	assert.InDelta(t, r.Legs[0].DistanceMiles/60, r.Legs[0].DurationHours, 1e-9)
	assert.InDelta(t, 449.28, r.TotalDistance, 0.01)
	assert.Equal(t, 1, r.FuelStops)
	assert.Empty(t, r.RequiredRestStops)

	require.Len(t, res.ELDLogs, 1)
	l := res.ELDLogs[0]
	assert.Equal(t, "2025-03-10", l.Date)
	assert.Equal(t, 449, l.TotalMiles)
	assert.Equal(t, 7.5, l.DrivingHours)
	assert.Equal(t, 3.0, l.OnDutyHours)
	assert.Equal(t, domain.OnDuty, l.TimeSlots[24])
	assert.Equal(t, domain.Driving, l.TimeSlots[26])
	assert.Equal(t, domain.OnDuty, l.TimeSlots[41])
	assert.Equal(t, domain.Driving, l.TimeSlots[45])
	assert.Equal(t, domain.OffDuty, l.TimeSlots[66])

	times := make([]string, 0, len(l.Remarks))
	for _, rm := range l.Remarks {
		times = append(times, rm.Time+" "+rm.Activity)
	}
	assert.Equal(t, []string{
		"06:00 Pre-trip inspection",
		"06:30 Driving to pickup",
		"10:15 Pickup",
		"11:15 Driving to delivery",
		"15:00 Delivery",
		"16:00 Post-trip inspection",
		"16:30 Off duty",
	}, times)

	c := res.ComplianceSummary
	assert.Equal(t, 75.5, c.ProjectedCycleHours)
	assert.Equal(t, []string{"70-hour cycle limit would be exceeded: 75.5 hours"}, c.Violations)
	assert.Equal(t, []string{"Approaching cycle limit: 75.5/70 hours"}, c.Warnings)
	assert.False(t, c.Compliant)
}

func TestPlanTripBackendSingleDayBreak(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: depotA, To: depotB, Miles: 490},
		{From: depotB, To: depotC, Miles: 120},
	})

	res, err := PlanTripBackend(context.Background(), depotRequest(0), depotGeocoder(), provider, tripStart)
	require.NoError(t, err)

	require.Len(t, res.Route.RequiredRestStops, 1)
	assert.Equal(t, domain.RestThirtyMinute, res.Route.RequiredRestStops[0].Type)

	l := res.ELDLogs[0]
	// 33 slots to pickup, 8 to drop-off.
	assert.Equal(t, 10.25, l.DrivingHours)
	assert.Equal(t, domain.OffDuty, l.TimeSlots[63])
	assert.Equal(t, domain.OffDuty, l.TimeSlots[64])
	assert.Equal(t, domain.Driving, l.TimeSlots[65])
	assert.Equal(t, "30-minute break", l.Remarks[3].Activity)
	assert.Equal(t, "15:45", l.Remarks[3].Time)
	assert.True(t, res.ComplianceSummary.Compliant)
}

func TestPlanTripBackendDailyLimits(t *testing.T) {
	// Just under 11 hours in total, but each leg rounds up a quarter hour.
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: depotA, To: depotB, Miles: 330.1},
		{From: depotB, To: depotC, Miles: 329.8},
	})

	res, err := PlanTripBackend(context.Background(), depotRequest(0), depotGeocoder(), provider, tripStart)
	require.NoError(t, err)
	require.Len(t, res.ELDLogs, 1)

	c := res.ComplianceSummary
	assert.Equal(t, []string{
		"Driving limit exceeded on 2025-03-10: 11.25 hours",
		"14-hour window exceeded on 2025-03-10: 14.25 hours",
	}, c.Violations)
	assert.False(t, c.Compliant)
}

func TestPlanTripBackendMultiDay(t *testing.T) {
	req := domain.TripRequest{
		CurrentLocation:   "Chicago",
		PickupLocation:    "New York",
		DropoffLocation:   "Los Angeles",
		CurrentCycleHours: 10,
	}

	res, err := PlanTripBackend(context.Background(), req, builtinGeocoder(), distance.NewHaversineProvider(), tripStart)
	require.NoError(t, err)

	assert.InDelta(t, 3154.39, res.Route.TotalDistance, 0.01)
	assert.Equal(t, 4, res.Route.FuelStops)
	assert.Len(t, res.Route.RequiredRestStops, 2)

	require.Len(t, res.ELDLogs, 5)
	for i, l := range res.ELDLogs[:4] {
		assert.Equal(t, 11.0, l.DrivingHours, "day %d", i+1)
		assert.Equal(t, 0.5, l.OnDutyHours, "day %d", i+1)
		assert.Equal(t, 630, l.TotalMiles)
		assert.Equal(t, domain.OffDuty, l.TimeSlots[74])
	}
	last := res.ELDLogs[4]
	assert.Equal(t, 8.5, last.DrivingHours)
	assert.Equal(t, "2025-03-14", last.Date)
	assert.Equal(t, domain.Remark{Time: "10:00", Location: "En route", Status: domain.OnDuty, Activity: "Day 5 pre-trip"}, last.Remarks[0])
	assert.Equal(t, domain.Remark{Time: "10:30", Location: "En route", Status: domain.Driving, Activity: "Driving day 5"}, last.Remarks[1])

	c := res.ComplianceSummary
	assert.Equal(t, 52.5, c.TotalDrivingHours)
	assert.Equal(t, 55.0, c.TotalOnDutyHours)
	assert.Equal(t, 65.0, c.ProjectedCycleHours)
	assert.Empty(t, c.Violations)
	assert.Len(t, c.Warnings, 1)
	assert.True(t, c.Compliant)
}

func TestPlanTripBackendUnknownCityUsesCenter(t *testing.T) {
	req := domain.TripRequest{CurrentLocation: "Nowhereville", PickupLocation: "Nowhereville", DropoffLocation: "Nowhereville"}

	res, err := PlanTripBackend(context.Background(), req, builtinGeocoder(), distance.NewHaversineProvider(), tripStart)
	require.NoError(t, err)

	for _, c := range res.Route.AllCoordinates {
		assert.Equal(t, geocode.USCenter, c)
	}
	assert.Zero(t, res.Route.TotalDistance)
	assert.Len(t, res.ELDLogs, 1)
}

func TestCheckComplianceEmpty(t *testing.T) {
	c := CheckCompliance(30, nil)

	assert.Equal(t, 30.0, c.ProjectedCycleHours)
	assert.NotNil(t, c.Violations)
	assert.NotNil(t, c.Warnings)
	assert.True(t, c.Compliant)
}
