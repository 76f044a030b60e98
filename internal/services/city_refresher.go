package services

import (
	"context"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CityTable is the in-memory lookup table the geocoder matches against.
type CityTable interface {
	Replace(cities []domain.City)
}

// RefreshCities loads the directory from repo into table. An empty directory
// installs builtin instead. It returns the number of cities installed.
func RefreshCities(ctx context.Context, repo ports.CityRepository, table CityTable, builtin []domain.City) (int, error) {
	cities, err := repo.ListCities(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh cities: %w", err)
	}
	if len(cities) == 0 {
		cities = builtin
	}
	table.Replace(cities)
	return len(cities), nil
}

// ScheduleCityRefresh reloads the city table on the given cron schedule.
// onLoaded, when set, receives the size of every successful reload.
// The returned scheduler is already started; Stop it on shutdown.
func ScheduleCityRefresh(schedule string, repo ports.CityRepository, table CityTable, builtin []domain.City, onLoaded func(n int)) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := RefreshCities(ctx, repo, table, builtin)
		if err != nil {
			log.Printf("city refresh failed: err=%v", err)
			return
		}
		log.Printf("city refresh done: cities=%d", n)
		if onLoaded != nil {
			onLoaded(n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule city refresh %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
