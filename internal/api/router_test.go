package api

import (
	"bytes"
	"eld-trip-planner/internal/adapters/distance"
	"eld-trip-planner/internal/adapters/geocode"
	"eld-trip-planner/internal/clock"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, mutate func(*Deps)) http.Handler {
	t.Helper()
	d := Deps{
		Planner: &services.BackendPlanner{
			Geocoder: geocode.NewTableGeocoder(geocode.BuiltinCities, geocode.FixedFallback(geocode.USCenter)),
			Distance: distance.NewHaversineProvider(),
			Clock:    clock.NewMockClock(fixedNow),
			NewID:    func() string { return "trip-1" },
		},
		Web: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("dashboard " + r.URL.Path))
		}),
	}
	if mutate != nil {
		mutate(&d)
	}
	return NewRouter(d)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

const validTrip = `{"current_location":"Chicago","pickup_location":"New York","dropoff_location":"Los Angeles","current_cycle_hours":10}`

func TestHealth(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestPlanTrip(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(h, http.MethodPost, "/api/plan-trip/", validTrip)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res domain.TripResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "trip-1", res.TripID)
	require.Len(t, res.Route.Legs, 2)
	assert.Equal(t, "Chicago", res.Route.Legs[0].From)
	assert.Len(t, res.ELDLogs, 5)
	assert.Equal(t, "2025-03-10", res.ELDLogs[0].Date)
	assert.True(t, res.ComplianceSummary.Compliant)

	// The slashless form is accepted too.
	rec = do(h, http.MethodPost, "/api/plan-trip", validTrip)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlanTripAcceptsStringHours(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(h, http.MethodPost, "/api/plan-trip/",
		`{"current_location":"Dallas","pickup_location":"Houston","dropoff_location":"Austin","current_cycle_hours":"0"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPlanTripRejectsBadInput(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed", `{"current_location":`, "invalid json body"},
		{"unknown field", `{"current_location":"a","pickup_location":"b","dropoff_location":"c","current_cycle_hours":1,"extra":true}`, "invalid json body"},
		{"two objects", validTrip + validTrip, "body must contain only one JSON object"},
		{"missing hours", `{"current_location":"a","pickup_location":"b","dropoff_location":"c"}`, "current_cycle_hours is required"},
		{"blank location", `{"current_location":"  ","pickup_location":"b","dropoff_location":"c","current_cycle_hours":1}`, "current_location is required"},
		{"hours too high", `{"current_location":"a","pickup_location":"b","dropoff_location":"c","current_cycle_hours":70.5}`, "current_cycle_hours must be at most 70"},
		{"hours negative", `{"current_location":"a","pickup_location":"b","dropoff_location":"c","current_cycle_hours":-1}`, "current_cycle_hours must be at least 0"},
		{"hours not numeric", `{"current_location":"a","pickup_location":"b","dropoff_location":"c","current_cycle_hours":"ten"}`, "invalid json body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/api/plan-trip/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, rec))
		})
	}
}

func TestPlanTripMethodNotAllowed(t *testing.T) {
	rec := do(newTestRouter(t, nil), http.MethodGet, "/api/plan-trip/", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Equal(t, "method not allowed", decodeError(t, rec))
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	rec := do(newTestRouter(t, nil), http.MethodGet, "/api/trip/1/", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decodeError(t, rec))
}

func TestOtherRoutesReachDashboard(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, p := range []string{"/", "/logs", "/some/deep/link"} {
		rec := do(h, http.MethodGet, p, "")
		assert.Equal(t, http.StatusOK, rec.Code, p)
		assert.Equal(t, "dashboard "+p, rec.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "client-123", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	got := rec.Header().Get("X-Request-ID")
	assert.Len(t, got, 36)
	assert.NotEqual(t, "bad id with spaces", got)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, func(d *Deps) { d.CORSOrigins = []string{"https://dispatch.example"} })

	req := httptest.NewRequest(http.MethodOptions, "/api/plan-trip/", nil)
	req.Header.Set("Origin", "https://dispatch.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://dispatch.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	mc := clock.NewMockClock(fixedNow)
	rl := NewRateLimiter(2, mc)
	t.Cleanup(rl.Stop)
	h := newTestRouter(t, func(d *Deps) { d.RateLimiter = rl })

	for i := 0; i < 2; i++ {
		rec := do(h, http.MethodPost, "/api/plan-trip/", validTrip)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(h, http.MethodPost, "/api/plan-trip/", validTrip)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, "rate limit exceeded", decodeError(t, rec))

	// The dashboard and health checks are not limited.
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/", "").Code)

	mc.Advance(30 * time.Second)
	rec = do(h, http.MethodPost, "/api/plan-trip/", validTrip)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type recordedObservation struct {
	method, route string
	status        int
}

type recordingHTTPMetrics struct {
	mu  sync.Mutex
	obs []recordedObservation
}

func (m *recordingHTTPMetrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, recordedObservation{method, route, status})
}

func TestHTTPMetricsUseRoutePattern(t *testing.T) {
	m := &recordingHTTPMetrics{}
	h := newTestRouter(t, func(d *Deps) { d.Metrics = m })

	do(h, http.MethodPost, "/api/plan-trip/", validTrip)
	do(h, http.MethodGet, "/health", "")
	do(h, http.MethodGet, "/anything/else", "")

	require.Len(t, m.obs, 3)
	assert.Equal(t, http.MethodPost, m.obs[0].method)
	assert.True(t, strings.HasPrefix(m.obs[0].route, "/api/plan-trip"), m.obs[0].route)
	assert.Equal(t, http.StatusOK, m.obs[0].status)
	assert.Equal(t, "/health", m.obs[1].route)
	assert.Equal(t, "/*", m.obs[2].route)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, func(d *Deps) {
		d.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("eld_up 1\n"))
		})
	})

	rec := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "eld_up 1\n", rec.Body.String())
}

func TestExportLogs(t *testing.T) {
	h := newTestRouter(t, nil)

	plan := do(h, http.MethodPost, "/api/plan-trip/", validTrip)
	require.Equal(t, http.StatusOK, plan.Code)

	rec := do(h, http.MethodPost, "/api/eld-logs/export", plan.Body.String())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="eld-logs-trip-1.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 5)
}

func TestExportLogsAcceptsUnusualDates(t *testing.T) {
	h := newTestRouter(t, nil)
	slots := `"` + strings.Repeat(`off_duty","`, domain.SlotsPerDay-1) + `off_duty"`

	for _, date := range []string{"2025/03/10", "2025-03-10T00:00:00.000Z-long", "[x]", "2025-03-10"} {
		body := `{"eld_logs":[{"date":"` + date + `","time_slots":[` + slots + `]}]}`

		rec := do(h, http.MethodPost, "/api/eld-logs/export", body)

		require.Equal(t, http.StatusOK, rec.Code, date)
		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err, date)
		v, err := f.GetCellValue(f.GetSheetName(0), "B2")
		require.NoError(t, err)
		assert.Equal(t, date, v)
		f.Close()
	}
}

func TestExportLogsRejectsEmpty(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(h, http.MethodPost, "/api/eld-logs/export", `{"trip_id":"x","eld_logs":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "eld_logs")

	rec = do(h, http.MethodPost, "/api/eld-logs/export", `{"eld_logs":[{"time_slots":["driving"]}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
