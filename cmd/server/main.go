package main

import (
	"context"
	"database/sql"
	"eld-trip-planner/internal/adapters/distance"
	"eld-trip-planner/internal/adapters/events"
	"eld-trip-planner/internal/adapters/geocode"
	"eld-trip-planner/internal/adapters/planner"
	"eld-trip-planner/internal/adapters/repositories"
	"eld-trip-planner/internal/api"
	"eld-trip-planner/internal/clock"
	"eld-trip-planner/internal/config"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/platform/db"
	"eld-trip-planner/internal/platform/metrics"
	"eld-trip-planner/internal/services"
	"eld-trip-planner/internal/webui"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// cityTables fans a city directory reload out to every geocoder.
type cityTables []*geocode.TableGeocoder

func (t cityTables) Replace(cities []domain.City) {
	for _, g := range t {
		g.Replace(cities)
	}
}

// main is the application composition root.
// It wires concrete adapters (city directory, planner client, NATS) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mcol := metrics.NewCollector()
	clk := clock.RealClock{}
	haversine := distance.NewHaversineProvider()

	// Unknown cities: the estimator scatters them over the continental US,
	// the planning endpoint pins them to its centre.
	estimateGeo := geocode.NewTableGeocoder(geocode.BuiltinCities, geocode.RandomFallback(nil))
	backendGeo := geocode.NewTableGeocoder(geocode.BuiltinCities, geocode.FixedFallback(geocode.USCenter))
	mcol.SetCitiesLoaded(len(geocode.BuiltinCities))

	if cfg.CityDBDriver != "" {
		cityDB, err := openCityDirectory(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer cityDB.Close()

		repo := repositories.NewSQLCityRepository(cityDB)
		tables := cityTables{estimateGeo, backendGeo}
		n, err := services.RefreshCities(ctx, repo, tables, geocode.BuiltinCities)
		if err != nil {
			log.Fatal(err)
		}
		mcol.SetCitiesLoaded(n)
		log.Printf("city directory loaded: driver=%s cities=%d", cfg.CityDBDriver, n)

		if cfg.CityRefreshSchedule != "" {
			c, err := services.ScheduleCityRefresh(cfg.CityRefreshSchedule, repo, tables, geocode.BuiltinCities, mcol.SetCitiesLoaded)
			if err != nil {
				log.Fatal(err)
			}
			defer c.Stop()
		}
	}

	backend := &services.BackendPlanner{Geocoder: backendGeo, Distance: haversine, Clock: clk}
	estimator := &services.Estimator{Geocoder: estimateGeo, Distance: haversine, Clock: clk}

	svc := &services.TripService{Fallback: estimator, Metrics: mcol, Clock: clk}
	if !cfg.PlannerDisabled {
		remote, err := planner.NewHTTPPlanner(cfg.PlannerURL, cfg.PlannerTimeout)
		if err != nil {
			log.Fatal(err)
		}
		svc.Remote = remote
	}

	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, mcol)
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		defer pub.Close()
		svc.Events = pub
	}

	ui, err := webui.New(svc, cfg.StaticDir)
	if err != nil {
		log.Fatal(err)
	}

	limiter := api.NewRateLimiter(cfg.RateLimitPerMinute, clk)
	limiter.ExemptLoopback = cfg.RateLimitExemptLoopback
	defer limiter.Stop()

	router := api.NewRouter(api.Deps{
		Planner:        backend,
		Web:            ui.Handler(),
		Metrics:        mcol,
		MetricsHandler: mcol.Handler(),
		RateLimiter:    limiter,
		CORSOrigins:    cfg.CORSAllowedOrigins,
	})

	// The write timeout covers a dashboard submit, which may wait on the
	// planner client's retries before falling back.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s planner=%s", cfg.Port, plannerMode(cfg))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func plannerMode(cfg *config.Config) string {
	if cfg.PlannerDisabled {
		return "local"
	}
	return cfg.PlannerURL
}

// openCityDirectory opens the city database, ensures the schema and applies
// the seed file when one is configured.
func openCityDirectory(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	cityDB, err := db.Open(cfg.CityDBDriver, cfg.CityDBDSN)
	if err != nil {
		return nil, err
	}

	if err := repositories.InitSchema(ctx, cityDB); err != nil {
		cityDB.Close()
		return nil, fmt.Errorf("open city directory: %w", err)
	}

	if cfg.CitySeedPath != "" {
		dialect, err := repositories.DialectFor(cfg.CityDBDriver)
		if err != nil {
			cityDB.Close()
			return nil, fmt.Errorf("open city directory: %w", err)
		}
		n, err := repositories.SeedCitiesFromJSON(ctx, cityDB, dialect, cfg.CitySeedPath)
		if err != nil {
			cityDB.Close()
			return nil, fmt.Errorf("open city directory: %w", err)
		}
		log.Printf("city seed applied: path=%s cities=%d", cfg.CitySeedPath, n)
	}

	return cityDB, nil
}
