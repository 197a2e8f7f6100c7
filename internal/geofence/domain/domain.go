// Package domain holds the shared types for protected-zone resolution.
package domain

import "geoas_backend/platform/apperr"

// ProtectionLevel classifies a protected zone. The ordering
// high > medium > low > unknown drives tie-breaking when zones overlap.
type ProtectionLevel string

const (
	LevelLow     ProtectionLevel = "low"
	LevelMedium  ProtectionLevel = "medium"
	LevelHigh    ProtectionLevel = "high"
	LevelUnknown ProtectionLevel = "unknown"
)

// ParseProtectionLevel maps stored level strings onto the enum.
// Anything unrecognized collapses to LevelUnknown.
func ParseProtectionLevel(s string) ProtectionLevel {
	switch ProtectionLevel(s) {
	case LevelLow, LevelMedium, LevelHigh:
		return ProtectionLevel(s)
	default:
		return LevelUnknown
	}
}

// Rank returns the tie-break ordinal of the level. Higher wins.
func (l ProtectionLevel) Rank() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	default:
		return 0
	}
}

// Point is an immutable WGS 84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Validate checks the coordinate ranges.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return apperr.Validation("invalid coordinate: latitude out of range").WithOp("geofence.Point.Validate")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return apperr.Validation("invalid coordinate: longitude out of range").WithOp("geofence.Point.Validate")
	}
	return nil
}

// Zone is a protected area polygon. Zones are read-only reference data loaded
// from the spatial store; the application never mutates them.
type Zone struct {
	ID              int64
	Name            string
	ProtectionLevel ProtectionLevel
	// GeoJSON holds the zone geometry as returned by ST_AsGeoJSON.
	GeoJSON string
}

// LocationDecision is the result of resolving a point against all zones.
// Zone and ProtectionLevel are both set or both nil; Inside mirrors Zone.
type LocationDecision struct {
	Inside          bool
	Zone            *string
	ProtectionLevel *ProtectionLevel
}

// OutsideDecision returns the all-absent decision used before any point was
// resolved and whenever a point falls outside every zone.
func OutsideDecision() LocationDecision {
	return LocationDecision{}
}

// InsideDecision builds a decision for a point inside the given zone.
func InsideDecision(zoneName string, level ProtectionLevel) LocationDecision {
	return LocationDecision{
		Inside:          true,
		Zone:            &zoneName,
		ProtectionLevel: &level,
	}
}
