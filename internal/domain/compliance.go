package domain

// Hours-of-Service figures reported for a trip.
// The fallback estimator never populates Violations and always reports
// Compliant; only the backend planner runs threshold checks.
type ComplianceSummary struct {
	TotalDrivingHours   float64  `json:"total_driving_hours"`
	TotalOnDutyHours    float64  `json:"total_on_duty_hours"`
	ProjectedCycleHours float64  `json:"projected_cycle_hours"`
	Violations          []string `json:"violations"`
	Warnings            []string `json:"warnings"`
	Compliant           bool     `json:"compliant"`
}

// HOS limits referenced by the summary and the dashboard.
const (
	DailyDrivingLimitHours = 11
	DailyWindowHours       = 14
	CycleLimitHours        = 70
	CycleWarningHours      = 60
)
