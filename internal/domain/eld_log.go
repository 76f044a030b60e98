package domain

// A free-text entry on a daily log sheet.
type Remark struct {
	Time     string     `json:"time"`
	Location string     `json:"location"`
	Status   DutyStatus `json:"status"`
	Activity string     `json:"activity"`
}

// One simulated day of a driver's Electronic Logging Device record.
// Hour totals are derived from TimeSlots.
type DailyLog struct {
	Date              string   `json:"date"`
	DriverName        string   `json:"driver_name"`
	CarrierName       string   `json:"carrier_name"`
	TotalMiles        int      `json:"total_miles"`
	DrivingHours      float64  `json:"driving_hours"`
	OnDutyHours       float64  `json:"on_duty_hours"`
	OffDutyHours      float64  `json:"off_duty_hours"`
	SleeperBerthHours float64  `json:"sleeper_berth_hours"`
	TimeSlots         Timeline `json:"time_slots"`
	Remarks           []Remark `json:"remarks"`
}

const (
	DefaultDriverName  = "Driver"
	DefaultCarrierName = "Transport Co."
)

// NewDailyLog builds a log for date from a finished timeline, deriving the
// per-status hour totals.
func NewDailyLog(date string, miles int, slots Timeline, remarks []Remark) DailyLog {
	return DailyLog{
		Date:              date,
		DriverName:        DefaultDriverName,
		CarrierName:       DefaultCarrierName,
		TotalMiles:        miles,
		DrivingHours:      slots.Hours(Driving),
		OnDutyHours:       slots.Hours(OnDuty),
		OffDutyHours:      slots.Hours(OffDuty),
		SleeperBerthHours: slots.Hours(Sleeper),
		TimeSlots:         slots,
		Remarks:           remarks,
	}
}
