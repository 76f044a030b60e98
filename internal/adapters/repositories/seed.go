package repositories

import (
	"context"
	"database/sql"
	"eld-trip-planner/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type CitySeed struct {
	Name  string  `json:"name"`
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Populate the city directory from a JSON array file. Rows are upserted, so
// the seed can be re-applied; list order becomes lookup order.
func SeedCitiesFromJSON(ctx context.Context, db *sql.DB, d Dialect, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed cities: read %q: %w", jsonPath, err)
	}

	var data []CitySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed cities: parse json: %w", err)
	}

	cities := make([]domain.City, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return 0, fmt.Errorf("seed cities: item at index %d: name cannot be empty", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lon < -180 || item.Lon > 180 {
			return 0, fmt.Errorf("seed cities: item %q at index %d: coordinates out of range", name, i+1)
		}
		cities = append(cities, domain.City{
			Name:  name,
			State: strings.ToUpper(strings.TrimSpace(item.State)),
			Lat:   item.Lat,
			Lon:   item.Lon,
		})
	}

	if err := UpsertCities(ctx, db, d, cities); err != nil {
		return 0, fmt.Errorf("seed cities: %w", err)
	}
	return len(cities), nil
}

// UpsertCities writes cities in one transaction, numbering them in order.
func UpsertCities(ctx context.Context, db *sql.DB, d Dialect, cities []domain.City) error {
	if db == nil {
		return errors.New("upsert cities: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert cities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := d.Rebind(`
	INSERT INTO cities (name, state, lat, lon, sort_order)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (name, state) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		sort_order = EXCLUDED.sort_order;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert cities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range cities {
		if _, err := stmt.ExecContext(ctx, c.Name, c.State, c.Lat, c.Lon, i+1); err != nil {
			return fmt.Errorf("upsert cities: insert %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert cities: commit tx: %w", err)
	}

	return nil
}
