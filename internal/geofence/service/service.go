package service

import (
	"context"

	"geoas_backend/internal/geofence/domain"
	"geoas_backend/platform/apperr"
)

// ZoneFinder is the spatial store contract. Implementations must return zones
// in a stable order so ties within a protection level break deterministically.
type ZoneFinder interface {
	FindIntersectingZones(ctx context.Context, point domain.Point) ([]domain.Zone, error)
}

// Resolver decides whether a point lies inside a protected zone and, when
// zones overlap, which single zone governs it.
type Resolver struct {
	zones ZoneFinder
}

func NewResolver(zones ZoneFinder) *Resolver {
	return &Resolver{zones: zones}
}

// Resolve maps a point to a LocationDecision. The point is validated first;
// out-of-range coordinates surface as a validation error, never silently
// corrected. The spatial query itself is pure: resolving the same point twice
// against unchanged zone data yields the same decision.
func (r *Resolver) Resolve(ctx context.Context, point domain.Point) (domain.LocationDecision, error) {
	if err := point.Validate(); err != nil {
		return domain.OutsideDecision(), err
	}

	zones, err := r.zones.FindIntersectingZones(ctx, point)
	if err != nil {
		return domain.OutsideDecision(), apperr.Wrap(apperr.KindUnavailable, "spatial store query failed", err).WithOp("geofence.Resolve")
	}

	if len(zones) == 0 {
		return domain.OutsideDecision(), nil
	}

	winner := pickZone(zones)
	return domain.InsideDecision(winner.Name, winner.ProtectionLevel), nil
}

// pickZone selects the zone with the highest protection level. Ties within a
// level keep the first zone in store order.
func pickZone(zones []domain.Zone) domain.Zone {
	winner := zones[0]
	for _, zone := range zones[1:] {
		if zone.ProtectionLevel.Rank() > winner.ProtectionLevel.Rank() {
			winner = zone
		}
	}
	return winner
}
