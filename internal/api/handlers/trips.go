package handlers

import (
	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/platform/validate"
	"eld-trip-planner/internal/ports"
	"log"
	"net/http"
)

// TripHandler serves the planning endpoint the dashboard calls.
type TripHandler struct {
	Planner ports.TripPlanner
}

func (h *TripHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanTripRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Planner.PlanTrip(r.Context(), req.ToDomain())
	if err != nil {
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}
