package domain

import (
	"encoding/json"
	"fmt"
)

// Duty status of a driver during one 15-minute slot.
type DutyStatus string

const (
	OffDuty DutyStatus = "off_duty"
	Sleeper DutyStatus = "sleeper"
	Driving DutyStatus = "driving"
	OnDuty  DutyStatus = "on_duty"
)

// Grid row order used by the ELD log sheet.
var DutyStatuses = []DutyStatus{OffDuty, Sleeper, Driving, OnDuty}

const (
	SlotsPerHour = 4
	SlotsPerDay  = 24 * SlotsPerHour
	SlotHours    = 0.25
)

func (s DutyStatus) Valid() bool {
	switch s {
	case OffDuty, Sleeper, Driving, OnDuty:
		return true
	}
	return false
}

// Label is the text printed on the log sheet row.
func (s DutyStatus) Label() string {
	switch s {
	case OffDuty:
		return "Off Duty"
	case Sleeper:
		return "Sleeper Berth"
	case Driving:
		return "Driving"
	case OnDuty:
		return "On Duty (Not Driving)"
	}
	return "Unknown"
}

// Timeline holds one duty status per 15-minute slot, midnight to midnight.
type Timeline [SlotsPerDay]DutyStatus

// NewTimeline returns a day spent entirely off duty.
func NewTimeline() Timeline {
	var t Timeline
	for i := range t {
		t[i] = OffDuty
	}
	return t
}

// Fill sets slots [from, to) to s, ignoring indexes outside the day.
func (t *Timeline) Fill(from, to int, s DutyStatus) {
	for i := max(from, 0); i < to && i < SlotsPerDay; i++ {
		t[i] = s
	}
}

func (t Timeline) Count(s DutyStatus) int {
	n := 0
	for _, v := range t {
		if v == s {
			n++
		}
	}
	return n
}

func (t Timeline) Hours(s DutyStatus) float64 {
	return float64(t.Count(s)) * SlotHours
}

// LastIndex returns the index of the last slot with status s, or -1.
func (t Timeline) LastIndex(s DutyStatus) int {
	for i := SlotsPerDay - 1; i >= 0; i-- {
		if t[i] == s {
			return i
		}
	}
	return -1
}

func (t *Timeline) UnmarshalJSON(b []byte) error {
	var raw []DutyStatus
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode time slots: %w", err)
	}
	if len(raw) != SlotsPerDay {
		return fmt.Errorf("decode time slots: want %d slots, got %d", SlotsPerDay, len(raw))
	}
	for i, s := range raw {
		if !s.Valid() {
			return fmt.Errorf("decode time slots: slot %d: unknown status %q", i, s)
		}
		t[i] = s
	}
	return nil
}

// SlotTime formats the start of a slot as HH:MM. Slots past the end of the
// day are pinned to the last slot.
func SlotTime(slot int) string {
	slot = min(max(slot, 0), SlotsPerDay-1)
	return fmt.Sprintf("%02d:%02d", slot/SlotsPerHour, (slot%SlotsPerHour)*15)
}
