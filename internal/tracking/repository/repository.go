// Package repository persists resolved tracking points.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TrackedPoint is one resolved point as stored.
type TrackedPoint struct {
	ID              int64
	Latitude        float64
	Longitude       float64
	Inside          bool
	ZoneName        *string
	ProtectionLevel *string
	CreatedAt       time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record inserts a resolved point.
func (r *Repository) Record(ctx context.Context, point TrackedPoint) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tracked_points (latitude, longitude, inside, zone_name, protection_level)
		VALUES ($1, $2, $3, $4, $5)`,
		point.Latitude, point.Longitude, point.Inside, point.ZoneName, point.ProtectionLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to record tracked point: %w", err)
	}
	return nil
}

// PruneOlderThan deletes points recorded before the cutoff and reports how
// many rows went away.
func (r *Repository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tracked_points WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune tracked points: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListRecent returns the newest points first, capped at limit.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]TrackedPoint, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, latitude, longitude, inside, zone_name, protection_level, created_at
		FROM tracked_points
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked points: %w", err)
	}
	defer rows.Close()

	points := make([]TrackedPoint, 0)
	for rows.Next() {
		var p TrackedPoint
		if err := rows.Scan(&p.ID, &p.Latitude, &p.Longitude, &p.Inside, &p.ZoneName, &p.ProtectionLevel, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tracked point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracked points: %w", err)
	}

	return points, nil
}
