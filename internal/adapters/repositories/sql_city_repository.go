package repositories

import (
	"context"
	"database/sql"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/platform/obs"
	"errors"
	"fmt"
)

// SQL-backed implementation of the CityRepository port.
type SQLCityRepository struct {
	DB *sql.DB
}

func NewSQLCityRepository(db *sql.DB) *SQLCityRepository {
	return &SQLCityRepository{DB: db}
}

// Return every city in seed order.
func (s *SQLCityRepository) ListCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time(ctx, "cities.ListCities")(&err)

	if s.DB == nil {
		return nil, errors.New("sql city repository: DB is nil")
	}

	query := `
	SELECT
		name,
		state,
		lat,
		lon
	FROM cities
	ORDER BY sort_order, name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cities: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 64)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.State, &c.Lat, &c.Lon); err != nil {
			return nil, fmt.Errorf("list cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cities: row iteration: %w", err)
	}

	return cities, nil
}
