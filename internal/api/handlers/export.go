package handlers

import (
	"bytes"
	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/export"
	"eld-trip-planner/internal/platform/validate"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ExportLogs renders posted daily logs as an XLSX workbook download.
func ExportLogs(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ExportRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// Buffer so a failed render can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, req.ELDLogs); err != nil {
		log.Printf("export logs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(req.TripID)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("export logs write failed: %v", err)
	}
}

func exportFilename(tripID string) string {
	id := unsafeFilename.ReplaceAllString(tripID, "")
	if id == "" {
		return "eld-logs.xlsx"
	}
	if len(id) > 64 {
		id = id[:64]
	}
	return "eld-logs-" + id + ".xlsx"
}
