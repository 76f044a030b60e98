package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry with every metric the service exports.
type Collector struct {
	reg *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec   // method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // method, route

	TripsPlanned    *prometheus.CounterVec // source: backend|fallback
	PlannerFailures prometheus.Counter

	CitiesLoaded  prometheus.Gauge
	NATSConnected prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eld_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eld_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		TripsPlanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eld_trips_planned_total",
			Help: "Trips planned from the dashboard by result source.",
		}, []string{"source"}),
		PlannerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eld_planner_failures_total",
			Help: "Planning endpoint calls that failed and fell back to the local estimate.",
		}),
		CitiesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eld_cities_loaded",
			Help: "Number of cities in the lookup table.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eld_nats_connected",
			Help: "1 if the NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.HTTPRequests, c.HTTPRequestDuration,
		c.TripsPlanned, c.PlannerFailures,
		c.CitiesLoaded, c.NATSConnected,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) TripPlanned(source string) { c.TripsPlanned.WithLabelValues(source).Inc() }
func (c *Collector) PlannerFailed()            { c.PlannerFailures.Inc() }
func (c *Collector) SetCitiesLoaded(n int)     { c.CitiesLoaded.Set(float64(n)) }

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}
