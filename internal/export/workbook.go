// Package export renders daily ELD logs as an XLSX workbook.
package export

import (
	"eld-trip-planner/internal/domain"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	titleRow   = 1
	headerRow  = 2
	hourRow    = 4
	gridRow    = 5 // first duty-status row
	remarksRow = gridRow + 5

	labelCol = 1
	gridCol  = 2 // column of slot 0
	totalCol = gridCol + domain.SlotsPerDay
)

// Fill colours of the grid rows, in domain.DutyStatuses order.
var statusColors = map[domain.DutyStatus]string{
	domain.OffDuty: "D9D9D9",
	domain.Sleeper: "9DC3E6",
	domain.Driving: "F4B183",
	domain.OnDuty:  "A9D08E",
}

// WriteWorkbook writes one sheet per log to w.
func WriteWorkbook(w io.Writer, logs []domain.DailyLog) error {
	f, err := BuildWorkbook(logs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook lays out each daily log on its own sheet: header, the
// status grid with per-row totals, then the remarks.
func BuildWorkbook(logs []domain.DailyLog) (*excelize.File, error) {
	if len(logs) == 0 {
		return nil, errors.New("build workbook: no logs")
	}

	f := excelize.NewFile()
	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", err)
	}

	for i, l := range logs {
		name := SheetName(i, l)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				f.Close()
				return nil, fmt.Errorf("build workbook: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("build workbook: new sheet %q: %w", name, err)
		}

		if err := writeLogSheet(f, name, l, styles); err != nil {
			f.Close()
			return nil, fmt.Errorf("build workbook: sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

// Excel caps sheet names at 31 characters and forbids :\/?*[] in them.
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "-", `\`, "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// SheetName is "Day N" plus the log date when present. The date is cleaned
// of characters Excel rejects and cut to fit; the "Day N" prefix keeps names
// unique.
func SheetName(i int, l domain.DailyLog) string {
	name := fmt.Sprintf("Day %d", i+1)
	date := strings.Trim(sheetNameReplacer.Replace(l.Date), " '")
	if date == "" {
		return name
	}
	name += " " + date
	if r := []rune(name); len(r) > maxSheetName {
		name = strings.TrimRight(string(r[:maxSheetName]), " '")
	}
	return name
}

type sheetStyles struct {
	bold   int
	status map[domain.DutyStatus]int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	s := sheetStyles{status: make(map[domain.DutyStatus]int, len(statusColors))}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, fmt.Errorf("bold style: %w", err)
	}
	s.bold = bold

	for st, color := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: []excelize.Border{
				{Type: "left", Color: "FFFFFF", Style: 1},
			},
		})
		if err != nil {
			return s, fmt.Errorf("%s style: %w", st, err)
		}
		s.status[st] = id
	}
	return s, nil
}

func writeLogSheet(f *excelize.File, sheet string, l domain.DailyLog, st sheetStyles) error {
	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	if err := set(labelCol, titleRow, "Driver's Daily Log"); err != nil {
		return err
	}
	header := []any{"Date", l.Date, "Driver", l.DriverName, "Carrier", l.CarrierName, "Total miles", l.TotalMiles}
	for i, v := range header {
		if err := set(labelCol+i, headerRow, v); err != nil {
			return err
		}
	}

	// Hour labels span the four quarter-hour columns of each hour.
	for h := 0; h < 24; h++ {
		first := gridCol + h*domain.SlotsPerHour
		if err := set(first, hourRow, hourLabel(h)); err != nil {
			return err
		}
		from, _ := excelize.CoordinatesToCellName(first, hourRow)
		to, _ := excelize.CoordinatesToCellName(first+domain.SlotsPerHour-1, hourRow)
		if err := f.MergeCell(sheet, from, to); err != nil {
			return err
		}
	}
	if err := set(totalCol, hourRow, "Hours"); err != nil {
		return err
	}

	for r, status := range domain.DutyStatuses {
		row := gridRow + r
		if err := set(labelCol, row, status.Label()); err != nil {
			return err
		}
		for slot, s := range l.TimeSlots {
			if s != status {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(gridCol+slot, row)
			if err := f.SetCellStyle(sheet, cell, cell, st.status[status]); err != nil {
				return err
			}
		}
		if err := set(totalCol, row, l.TimeSlots.Hours(status)); err != nil {
			return err
		}
	}

	if err := set(labelCol, remarksRow, "Remarks"); err != nil {
		return err
	}
	for i, h := range []string{"Time", "Location", "Status", "Activity"} {
		if err := set(labelCol+i, remarksRow+1, h); err != nil {
			return err
		}
	}
	for i, rm := range l.Remarks {
		row := remarksRow + 2 + i
		for j, v := range []string{rm.Time, rm.Location, rm.Status.Label(), rm.Activity} {
			if err := set(labelCol+j, row, v); err != nil {
				return err
			}
		}
	}

	a1, _ := excelize.CoordinatesToCellName(labelCol, titleRow)
	if err := f.SetCellStyle(sheet, a1, a1, st.bold); err != nil {
		return err
	}
	firstGrid, _ := excelize.ColumnNumberToName(gridCol)
	lastGrid, _ := excelize.ColumnNumberToName(totalCol - 1)
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(sheet, firstGrid, lastGrid, 1.6)
}

func hourLabel(h int) string {
	switch {
	case h == 0:
		return "Mid"
	case h == 12:
		return "Noon"
	case h < 12:
		return fmt.Sprintf("%d", h)
	}
	return fmt.Sprintf("%d", h-12)
}
