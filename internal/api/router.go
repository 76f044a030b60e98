package api

import (
	"eld-trip-planner/internal/api/handlers"
	"eld-trip-planner/internal/ports"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Deps are the collaborators the HTTP surface needs. Everything except
// Planner is optional.
type Deps struct {
	// Planner serves POST /api/plan-trip/.
	Planner ports.TripPlanner
	// Web serves the dashboard and everything the API does not match.
	Web http.Handler

	Metrics        HTTPMetrics
	MetricsHandler http.Handler
	RateLimiter    *RateLimiter
	CORSOrigins    []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(d.Metrics))

	tripHandler := &handlers.TripHandler{Planner: d.Planner}

	r.HandleFunc("/health", handlers.Health)
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		origins := d.CORSOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
			MaxAge:         300,
		}))
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}

		r.HandleFunc("/plan-trip/", tripHandler.PlanTrip)
		r.HandleFunc("/plan-trip", tripHandler.PlanTrip)
		r.HandleFunc("/eld-logs/export", handlers.ExportLogs)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}` + "\n"))
		})
	})

	if d.Web != nil {
		r.Mount("/", d.Web)
	}

	return r
}
