package export

import (
	"bytes"
	"eld-trip-planner/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleLogs() []domain.DailyLog {
	day1 := domain.NewTimeline()
	day1.Fill(0, 40, domain.Sleeper)
	day1.Fill(40, 56, domain.OnDuty)
	day1.Fill(56, 88, domain.Driving)

	day2 := domain.NewTimeline()
	day2.Fill(0, 40, domain.Sleeper)
	day2.Fill(40, 42, domain.OnDuty)

	return []domain.DailyLog{
		domain.NewDailyLog("2025-03-10", 631, day1, []domain.Remark{
			{Time: "10:00", Location: "Chicago", Status: domain.OnDuty, Activity: "Pre-trip inspection"},
			{Time: "14:00", Location: "Chicago", Status: domain.Driving, Activity: "Driving to pickup"},
		}),
		domain.NewDailyLog("2025-03-11", 631, day2, nil),
	}
}

func openWritten(t *testing.T, logs []domain.DailyLog) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, logs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteWorkbookSheets(t *testing.T) {
	f := openWritten(t, sampleLogs())

	assert.Equal(t, []string{"Day 1 2025-03-10", "Day 2 2025-03-11"}, f.GetSheetList())
}

func TestWriteWorkbookHeaderAndTotals(t *testing.T) {
	f := openWritten(t, sampleLogs())
	sheet := "Day 1 2025-03-10"

	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Driver's Daily Log", get("A1"))
	assert.Equal(t, "2025-03-10", get("B2"))
	assert.Equal(t, domain.DefaultDriverName, get("D2"))
	assert.Equal(t, "631", get("H2"))

	assert.Equal(t, "Mid", get("B4"))
	assert.Equal(t, "Noon", get(cellName(t, gridCol+12*4, hourRow)))

	// Row labels and per-row hour totals.
	assert.Equal(t, "Off Duty", get("A5"))
	assert.Equal(t, "Sleeper Berth", get("A6"))
	assert.Equal(t, "Driving", get("A7"))
	assert.Equal(t, "On Duty (Not Driving)", get("A8"))
	assert.Equal(t, "2", get(cellName(t, totalCol, 5)))
	assert.Equal(t, "10", get(cellName(t, totalCol, 6)))
	assert.Equal(t, "8", get(cellName(t, totalCol, 7)))
	assert.Equal(t, "4", get(cellName(t, totalCol, 8)))

	assert.Equal(t, "Remarks", get("A10"))
	assert.Equal(t, "10:00", get("A12"))
	assert.Equal(t, "Chicago", get("B12"))
	assert.Equal(t, "On Duty (Not Driving)", get("C12"))
	assert.Equal(t, "Driving to pickup", get("D13"))
}

func TestWriteWorkbookShadesGrid(t *testing.T) {
	f := openWritten(t, sampleLogs())
	sheet := "Day 1 2025-03-10"

	style := func(col, row int) int {
		id, err := f.GetCellStyle(sheet, cellName(t, col, row))
		require.NoError(t, err)
		return id
	}

	drivingRow := gridRow + 2
	shaded := style(gridCol+56, drivingRow)
	assert.NotZero(t, shaded)
	assert.Equal(t, shaded, style(gridCol+87, drivingRow))
	assert.Zero(t, style(gridCol+88, drivingRow))
	assert.Zero(t, style(gridCol+10, drivingRow))

	// Each status has its own fill.
	assert.NotEqual(t, shaded, style(gridCol+0, gridRow+1))
}

func TestWriteWorkbookNoLogs(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteWorkbook(&buf, nil))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Day 3", SheetName(2, domain.DailyLog{}))
	assert.Equal(t, "Day 1 2025-03-10", SheetName(0, domain.DailyLog{Date: "2025-03-10"}))
	assert.Equal(t, "Day 1 2025-03-10", SheetName(0, domain.DailyLog{Date: "2025/03/10"}))
	assert.Equal(t, "Day 4 (x)", SheetName(3, domain.DailyLog{Date: "[x]"}))
	assert.Equal(t, "Day 2", SheetName(1, domain.DailyLog{Date: " ?*' "}))

	long := SheetName(0, domain.DailyLog{Date: "2025-03-10T00:00:00.000Z-long"})
	assert.Equal(t, "Day 1 2025-03-10T00-00-00.000Z-", long)
	assert.Len(t, []rune(long), maxSheetName)
}

func TestWriteWorkbookAcceptsAnyDate(t *testing.T) {
	logs := sampleLogs()
	date := "2025/03/10 [night shift] *draft*: " + strings.Repeat("x", 40)
	logs[0].Date = date
	logs[1].Date = date

	f := openWritten(t, logs)

	sheets := f.GetSheetList()
	require.Len(t, sheets, 2)
	assert.NotEqual(t, sheets[0], sheets[1])
	for _, s := range sheets {
		assert.LessOrEqual(t, len([]rune(s)), maxSheetName)
		assert.NotContains(t, s, "/")
	}

	v, err := f.GetCellValue(sheets[0], "B2")
	require.NoError(t, err)
	assert.Equal(t, date, v)
}

func cellName(t *testing.T, col, row int) string {
	t.Helper()
	c, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	return c
}
