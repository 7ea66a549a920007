package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	selectCitiesSQL = `SELECT id, name, country, lat, lon, area, population
FROM cities
ORDER BY position, id`
	selectPhotosSQL = `SELECT city_id, url
FROM city_photos
ORDER BY city_id, position, id`
)

type cityRow struct {
	ID int64 `db:"id"`
	City
}

type photoRow struct {
	CityID int64  `db:"city_id"`
	URL    string `db:"url"`
}

// LoadPostgres reads cities and their photos from the tables created by the
// migrations in the migrations directory.
func LoadPostgres(ctx context.Context, db *sqlx.DB) ([]City, error) {
	var rows []cityRow
	if err := db.SelectContext(ctx, &rows, selectCitiesSQL); err != nil {
		return nil, fmt.Errorf("select cities: %w", err)
	}
	var photos []photoRow
	if err := db.SelectContext(ctx, &photos, selectPhotosSQL); err != nil {
		return nil, fmt.Errorf("select city photos: %w", err)
	}
	return joinPhotos(rows, photos), nil
}

func joinPhotos(rows []cityRow, photos []photoRow) []City {
	byCity := make(map[int64][]string, len(rows))
	for _, p := range photos {
		byCity[p.CityID] = append(byCity[p.CityID], p.URL)
	}
	cities := make([]City, 0, len(rows))
	for _, r := range rows {
		city := r.City
		city.PhotoURLs = byCity[r.ID]
		cities = append(cities, city)
	}
	return cities
}
