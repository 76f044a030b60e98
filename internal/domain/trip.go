package domain

// Input collected by the trip form.
// Immutable once submitted; current_cycle_hours is hours already used in the
// driver's 70-hour/8-day cycle.
type TripRequest struct {
	CurrentLocation   string  `json:"current_location" validate:"required"`
	PickupLocation    string  `json:"pickup_location" validate:"required"`
	DropoffLocation   string  `json:"dropoff_location" validate:"required"`
	CurrentCycleHours float64 `json:"current_cycle_hours" validate:"gte=0,lte=70"`
}

// Everything produced for one form submission: the route, one ELD log per
// simulated day, and the compliance summary. Held only in transient UI state.
type TripResult struct {
	TripID            string            `json:"trip_id"`
	Route             Route             `json:"route"`
	ELDLogs           []DailyLog        `json:"eld_logs"`
	ComplianceSummary ComplianceSummary `json:"compliance_summary"`
}
