// Package service records resolved points and assembles the map view.
package service

import (
	"context"

	"geoas_backend/internal/events"
	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/tracking/repository"
	"geoas_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// PointWriter persists resolved points.
type PointWriter interface {
	Record(ctx context.Context, point repository.TrackedPoint) error
	ListRecent(ctx context.Context, limit int) ([]repository.TrackedPoint, error)
}

// ZoneReader lists the protected zones with their geometry.
type ZoneReader interface {
	ListZones(ctx context.Context) ([]geo.Zone, error)
}

type Service struct {
	points PointWriter
	zones  ZoneReader
	log    *logger.Logger
}

func NewService(points PointWriter, zones ZoneReader, log *logger.Logger) *Service {
	return &Service{points: points, zones: zones, log: log}
}

// RecordResolved persists a resolved point. The point flow never depends on
// this write succeeding; failures are logged and swallowed.
func (s *Service) RecordResolved(ctx context.Context, event events.PointResolved) {
	err := s.points.Record(ctx, repository.TrackedPoint{
		Latitude:        event.Latitude,
		Longitude:       event.Longitude,
		Inside:          event.Inside,
		ZoneName:        event.ZoneName,
		ProtectionLevel: event.ProtectionLevel,
	})
	if err != nil {
		s.log.CollaboratorError("tracking", "record point", err)
	}
}

// MapData bundles zones and recent points for map rendering.
type MapData struct {
	Zones  []geo.Zone
	Points []repository.TrackedPoint
}

// MapData loads zones and recent points concurrently.
func (s *Service) MapData(ctx context.Context, pointLimit int) (MapData, error) {
	var data MapData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zones, err := s.zones.ListZones(gctx)
		if err != nil {
			return err
		}
		data.Zones = zones
		return nil
	})
	g.Go(func() error {
		points, err := s.points.ListRecent(gctx, pointLimit)
		if err != nil {
			return err
		}
		data.Points = points
		return nil
	})

	if err := g.Wait(); err != nil {
		return MapData{}, err
	}
	return data, nil
}
