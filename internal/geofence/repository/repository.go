package repository

import (
	"context"
	"fmt"

	"geoas_backend/internal/geofence/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository queries the PostGIS spatial store for protected zones.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindIntersectingZones returns every zone whose geometry intersects the
// point, ordered by id so tie-breaking is deterministic. Intersection is used
// rather than containment so boundary points count as inside.
func (r *Repository) FindIntersectingZones(ctx context.Context, point domain.Point) ([]domain.Zone, error) {
	querySQL := `
		SELECT
			id,
			name,
			protection_level,
			ST_AsGeoJSON(geom) AS geojson
		FROM protected_zones
		WHERE ST_Intersects(
			geom,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)
		)
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, querySQL, point.Longitude, point.Latitude)
	if err != nil {
		return nil, fmt.Errorf("intersecting zones query failed: %w", err)
	}
	defer rows.Close()

	zones := make([]domain.Zone, 0)
	for rows.Next() {
		var (
			zone  domain.Zone
			level string
		)
		if err := rows.Scan(&zone.ID, &zone.Name, &level, &zone.GeoJSON); err != nil {
			return nil, err
		}
		zone.ProtectionLevel = domain.ParseProtectionLevel(level)
		zones = append(zones, zone)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return zones, nil
}

// ListZones returns all protected zones with their GeoJSON geometry, in
// stable id order. Used by the map data endpoint.
func (r *Repository) ListZones(ctx context.Context) ([]domain.Zone, error) {
	querySQL := `
		SELECT
			id,
			name,
			protection_level,
			ST_AsGeoJSON(geom) AS geojson
		FROM protected_zones
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, querySQL)
	if err != nil {
		return nil, fmt.Errorf("list zones query failed: %w", err)
	}
	defer rows.Close()

	zones := make([]domain.Zone, 0)
	for rows.Next() {
		var (
			zone  domain.Zone
			level string
		)
		if err := rows.Scan(&zone.ID, &zone.Name, &level, &zone.GeoJSON); err != nil {
			return nil, err
		}
		zone.ProtectionLevel = domain.ParseProtectionLevel(level)
		zones = append(zones, zone)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return zones, nil
}
