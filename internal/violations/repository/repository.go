// Package repository persists violation reports.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Violation is one stored report.
type Violation struct {
	ID              uuid.UUID
	Description     string
	PhotoKey        string
	Latitude        *float64
	Longitude       *float64
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

// Create inserts a report and returns it with its generated ID and timestamp.
func (r *Repository) Create(ctx context.Context, v Violation) (Violation, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO violations (description, photo_key, latitude, longitude, inside, zone_name, protection_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		v.Description, v.PhotoKey, v.Latitude, v.Longitude, v.Inside, v.ZoneName, v.ProtectionLevel,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return Violation{}, fmt.Errorf("failed to create violation: %w", err)
	}
	return v, nil
}

// List returns reports newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Violation, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, description, photo_key, latitude, longitude, inside, zone_name, protection_level, created_at
		FROM violations
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	violations := make([]Violation, 0)
	for rows.Next() {
		var v Violation
		if err := rows.Scan(&v.ID, &v.Description, &v.PhotoKey, &v.Latitude, &v.Longitude, &v.Inside, &v.ZoneName, &v.ProtectionLevel, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations = append(violations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate violations: %w", err)
	}

	return violations, nil
}
