package webui

import (
	"eld-trip-planner/internal/domain"
	"math"
	"strconv"
	"strings"
)

// GridRow is one duty-status row of the log sheet: 24 hours of 4 quarters.
type GridRow struct {
	Status domain.DutyStatus
	Label  string
	Class  string
	Hours  [24][domain.SlotsPerHour]bool
}

// LogView is a daily log laid out for the ELD grid.
type LogView struct {
	Day        int
	Date       string
	TotalMiles int
	Rows       []GridRow
	Totals     []StatusTotal
	Remarks    []domain.Remark
}

type StatusTotal struct {
	Label string
	Class string
	Hours string
}

var statusClass = map[domain.DutyStatus]string{
	domain.OffDuty: "off-duty",
	domain.Sleeper: "sleeper",
	domain.Driving: "driving",
	domain.OnDuty:  "on-duty",
}

// Short labels used by the totals cards.
var totalLabel = map[domain.DutyStatus]string{
	domain.OffDuty: "Off Duty",
	domain.Sleeper: "Sleeper Berth",
	domain.Driving: "Driving",
	domain.OnDuty:  "On Duty",
}

// NewLogView lays out log l, the day'th day of the trip (1-based).
func NewLogView(day int, l domain.DailyLog) LogView {
	v := LogView{
		Day:        day,
		Date:       l.Date,
		TotalMiles: l.TotalMiles,
		Remarks:    l.Remarks,
	}

	for _, s := range domain.DutyStatuses {
		row := GridRow{Status: s, Label: s.Label(), Class: statusClass[s]}
		for slot, got := range l.TimeSlots {
			if got == s {
				row.Hours[slot/domain.SlotsPerHour][slot%domain.SlotsPerHour] = true
			}
		}
		v.Rows = append(v.Rows, row)
	}

	hours := map[domain.DutyStatus]float64{
		domain.OffDuty: l.OffDutyHours,
		domain.Sleeper: l.SleeperBerthHours,
		domain.Driving: l.DrivingHours,
		domain.OnDuty:  l.OnDutyHours,
	}
	for _, s := range domain.DutyStatuses {
		v.Totals = append(v.Totals, StatusTotal{Label: totalLabel[s], Class: statusClass[s], Hours: formatHours(hours[s])})
	}
	return v
}

// NewLogViews lays out every log of a trip.
func NewLogViews(logs []domain.DailyLog) []LogView {
	out := make([]LogView, 0, len(logs))
	for i, l := range logs {
		out = append(out, NewLogView(i+1, l))
	}
	return out
}

// formatHours prints h rounded to one decimal without a trailing ".0".
func formatHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*10)/10, 'f', -1, 64)
}

// restStopTitle turns "30_minute_break" into "30 Minute Break".
func restStopTitle(kind string) string {
	words := strings.Fields(strings.ReplaceAll(kind, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func hourLabels() []int {
	h := make([]int, 24)
	for i := range h {
		h[i] = i
	}
	return h
}
