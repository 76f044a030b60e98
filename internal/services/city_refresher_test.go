package services

import (
	"context"
	"eld-trip-planner/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCityRepo struct {
	cities []domain.City
	err    error
}

func (r stubCityRepo) ListCities(ctx context.Context) ([]domain.City, error) {
	return r.cities, r.err
}

type recordingTable struct {
	got []domain.City
}

func (t *recordingTable) Replace(cities []domain.City) { t.got = cities }

var builtinForTest = []domain.City{{Name: "Chicago", State: "IL", Lat: 41.8781, Lon: -87.6298}}

func TestRefreshCities(t *testing.T) {
	table := &recordingTable{}
	repo := stubCityRepo{cities: []domain.City{{Name: "Boise", State: "ID"}, {Name: "Tulsa", State: "OK"}}}

	n, err := RefreshCities(context.Background(), repo, table, builtinForTest)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, repo.cities, table.got)
}

func TestRefreshCitiesEmptyDirectoryUsesBuiltin(t *testing.T) {
	table := &recordingTable{}

	n, err := RefreshCities(context.Background(), stubCityRepo{}, table, builtinForTest)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, builtinForTest, table.got)
}

func TestRefreshCitiesErrorKeepsTable(t *testing.T) {
	table := &recordingTable{got: builtinForTest}

	_, err := RefreshCities(context.Background(), stubCityRepo{err: errors.New("db gone")}, table, nil)
	require.Error(t, err)
	assert.Equal(t, builtinForTest, table.got)
}

func TestScheduleCityRefreshRejectsBadSchedule(t *testing.T) {
	_, err := ScheduleCityRefresh("every now and then", stubCityRepo{}, &recordingTable{}, nil, nil)
	require.Error(t, err)
}

func TestScheduleCityRefreshStarts(t *testing.T) {
	c, err := ScheduleCityRefresh("@every 1h", stubCityRepo{}, &recordingTable{}, nil, nil)
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}
