package dto

import (
	"bytes"
	"eld-trip-planner/internal/domain"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hours accepts a JSON number or a numeric string.
type Hours float64

func (h *Hours) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("hours: %q is not a number", s)
		}
		*h = Hours(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*h = Hours(f)
	return nil
}

type PlanTripRequest struct {
	CurrentLocation   string `json:"current_location" validate:"required"`
	PickupLocation    string `json:"pickup_location" validate:"required"`
	DropoffLocation   string `json:"dropoff_location" validate:"required"`
	CurrentCycleHours *Hours `json:"current_cycle_hours" validate:"required,gte=0,lte=70"`
}

// Normalize trims the free-text fields in place.
func (r *PlanTripRequest) Normalize() {
	r.CurrentLocation = strings.TrimSpace(r.CurrentLocation)
	r.PickupLocation = strings.TrimSpace(r.PickupLocation)
	r.DropoffLocation = strings.TrimSpace(r.DropoffLocation)
}

func (r PlanTripRequest) ToDomain() domain.TripRequest {
	var hours float64
	if r.CurrentCycleHours != nil {
		hours = float64(*r.CurrentCycleHours)
	}
	return domain.TripRequest{
		CurrentLocation:   r.CurrentLocation,
		PickupLocation:    r.PickupLocation,
		DropoffLocation:   r.DropoffLocation,
		CurrentCycleHours: hours,
	}
}

// ExportRequest is a trip result (or just its logs) posted back for export.
type ExportRequest struct {
	TripID  string            `json:"trip_id"`
	ELDLogs []domain.DailyLog `json:"eld_logs" validate:"required,min=1"`
}
