package services

import (
	"eld-trip-planner/internal/domain"
	"math"
)

const (
	// Midnight to 10:00 is spent in the sleeper berth on every simulated day.
	sleepSlots = 40
	// Longest driving run before a break is forced.
	maxDrivingRunSlots = 32
	breakSlots         = 2
	// Daily on-duty (not driving) allowance of the fallback estimator.
	fallbackOnDutyHours = 4.0
)

// driveInRuns marks drivingSlots slots as driving starting at current, in runs
// of at most eight hours separated by a 30-minute off-duty break. A break is
// only inserted while more driving remains and it fits before slot 94.
// Driving that does not fit in the day is dropped. It returns the slot after
// the last one written.
func driveInRuns(t *domain.Timeline, current, drivingSlots int) int {
	driven := 0
	for driven < drivingSlots && current < domain.SlotsPerDay {
		run := min(maxDrivingRunSlots, drivingSlots-driven, domain.SlotsPerDay-current)
		t.Fill(current, current+run, domain.Driving)
		current += run
		driven += run

		if driven < drivingSlots && current < domain.SlotsPerDay-breakSlots {
			t.Fill(current, current+breakSlots, domain.OffDuty)
			current += breakSlots
		}
	}
	return current
}

// FallbackTimeline builds one simulated day: sleeper from midnight for ten
// hours, then the on-duty allowance, then the driving hours in runs.
// Fractional quarter hours are floored.
func FallbackTimeline(drivingHours, onDutyHours float64) domain.Timeline {
	t := domain.NewTimeline()
	t.Fill(0, sleepSlots, domain.Sleeper)

	current := sleepSlots
	onDuty := int(math.Floor(onDutyHours * domain.SlotsPerHour))
	t.Fill(current, current+onDuty, domain.OnDuty)
	current += onDuty

	driveInRuns(&t, current, int(math.Floor(drivingHours*domain.SlotsPerHour)))
	return t
}
