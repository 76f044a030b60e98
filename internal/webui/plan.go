package webui

import (
	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/platform/validate"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const maxFormBytes = 64 << 10

// Values echoed back into the form inputs.
type formValues struct {
	CurrentLocation   string
	PickupLocation    string
	DropoffLocation   string
	CurrentCycleHours string
}

type page struct {
	Tabs   TabState
	Form   formValues
	Errors validate.Errors
	// Set when planning failed for a reason other than bad input.
	Failure string

	Result *domain.TripResult
	Map    *MapView
	Logs   []LogView
}

func newPage(s TabState) page {
	return page{Tabs: s, Form: formValues{CurrentCycleHours: "0"}}
}

func (ui *WebUI) plan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			http.Error(w, "form too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	p := newPage(TabState{Active: TabForm})
	p.Form = formValues{
		CurrentLocation:   r.PostForm.Get("current_location"),
		PickupLocation:    r.PostForm.Get("pickup_location"),
		DropoffLocation:   r.PostForm.Get("dropoff_location"),
		CurrentCycleHours: r.PostForm.Get("current_cycle_hours"),
	}

	req, verrs := parseForm(p.Form)
	if len(verrs) > 0 {
		p.Errors = verrs
		ui.render(w, http.StatusBadRequest, p)
		return
	}

	res, err := ui.planner.Plan(r.Context(), req)
	if err != nil {
		log.Printf("dashboard plan failed: %v", err)
		p.Failure = "The trip could not be planned. Please try again."
		ui.render(w, http.StatusInternalServerError, p)
		return
	}

	p.Tabs = p.Tabs.Submitted()
	p.Result = res
	mv := NewMapView(res.Route)
	p.Map = &mv
	p.Logs = NewLogViews(res.ELDLogs)
	ui.render(w, http.StatusOK, p)
}

// parseForm applies the same rules as the JSON endpoint to the HTML form.
func parseForm(f formValues) (domain.TripRequest, validate.Errors) {
	req := dto.PlanTripRequest{
		CurrentLocation: f.CurrentLocation,
		PickupLocation:  f.PickupLocation,
		DropoffLocation: f.DropoffLocation,
	}
	req.Normalize()

	var errs validate.Errors
	if s := strings.TrimSpace(f.CurrentCycleHours); s != "" {
		h, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs = append(errs, validate.FieldError{
				Field:   "current_cycle_hours",
				Message: "current_cycle_hours must be a number",
			})
		} else {
			hours := dto.Hours(h)
			req.CurrentCycleHours = &hours
		}
	}

	if err := validate.Struct(req); err != nil {
		var verrs validate.Errors
		if !errors.As(err, &verrs) {
			log.Printf("validate trip form: %v", err)
			return domain.TripRequest{}, validate.Errors{{Message: "invalid form"}}
		}
		for _, fe := range verrs {
			// A failed parse already explained the hours field.
			if errs.For(fe.Field) == "" {
				errs = append(errs, fe)
			}
		}
	}

	if len(errs) > 0 {
		return domain.TripRequest{}, errs
	}
	return req.ToDomain(), nil
}
