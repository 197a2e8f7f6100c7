package service

import (
	"context"

	"geoas_backend/internal/events"
	"geoas_backend/internal/geofence/domain"
	"geoas_backend/platform/logger"
)

// Service combines zone resolution with the process-wide location state.
// The state is only written after a successful resolution, so a cancelled or
// failed check never leaves a partial decision behind.
type Service struct {
	resolver *Resolver
	state    *StateStore
	bus      events.Bus
	log      *logger.Logger
}

func NewService(resolver *Resolver, state *StateStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		state:    state,
		bus:      bus,
		log:      log,
	}
}

// CheckPoint resolves a point, stores the decision as the current location,
// and announces it for fire-and-forget persistence.
func (s *Service) CheckPoint(ctx context.Context, point domain.Point) (domain.LocationDecision, error) {
	decision, err := s.resolver.Resolve(ctx, point)
	if err != nil {
		return domain.OutsideDecision(), err
	}

	s.state.Set(decision)

	zoneName, level := "", ""
	if decision.Zone != nil {
		zoneName = *decision.Zone
	}
	if decision.ProtectionLevel != nil {
		level = string(*decision.ProtectionLevel)
	}
	s.log.GeofenceDecision(decision.Inside, zoneName, level)

	if s.bus != nil {
		var levelPtr *string
		if decision.ProtectionLevel != nil {
			l := string(*decision.ProtectionLevel)
			levelPtr = &l
		}
		s.bus.Publish(ctx, events.PointResolved{
			BaseEvent:       events.NewBaseEvent(),
			Latitude:        point.Latitude,
			Longitude:       point.Longitude,
			Inside:          decision.Inside,
			ZoneName:        decision.Zone,
			ProtectionLevel: levelPtr,
		})
	}

	return decision, nil
}

// Current returns the latest stored decision without touching the store.
func (s *Service) Current() domain.LocationDecision {
	return s.state.Get()
}
