package service

import (
	"context"
	"errors"
	"testing"

	"geoas_backend/internal/events"
	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/tracking/repository"
	"geoas_backend/platform/logger"
)

type fakePoints struct {
	recorded  []repository.TrackedPoint
	recordErr error
	recent    []repository.TrackedPoint
	listErr   error
}

func (f *fakePoints) Record(_ context.Context, point repository.TrackedPoint) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, point)
	return nil
}

func (f *fakePoints) ListRecent(_ context.Context, _ int) ([]repository.TrackedPoint, error) {
	return f.recent, f.listErr
}

type fakeZones struct {
	zones []geo.Zone
	err   error
}

func (f *fakeZones) ListZones(_ context.Context) ([]geo.Zone, error) {
	return f.zones, f.err
}

func TestRecordResolved(t *testing.T) {
	points := &fakePoints{}
	svc := NewService(points, &fakeZones{}, logger.New("development"))

	zone := "النفود"
	level := "high"
	svc.RecordResolved(context.Background(), events.PointResolved{
		BaseEvent:       events.NewBaseEvent(),
		Latitude:        27.5,
		Longitude:       41.2,
		Inside:          true,
		ZoneName:        &zone,
		ProtectionLevel: &level,
	})

	if len(points.recorded) != 1 {
		t.Fatalf("recorded %d points, want 1", len(points.recorded))
	}
	got := points.recorded[0]
	if got.Latitude != 27.5 || got.Longitude != 41.2 || !got.Inside {
		t.Errorf("recorded point = %+v", got)
	}
	if got.ZoneName == nil || *got.ZoneName != zone {
		t.Errorf("ZoneName = %v, want %q", got.ZoneName, zone)
	}
}

func TestRecordResolvedSwallowsWriteFailure(t *testing.T) {
	points := &fakePoints{recordErr: errors.New("db down")}
	svc := NewService(points, &fakeZones{}, logger.New("development"))

	// Must not panic; the sink is fire and forget.
	svc.RecordResolved(context.Background(), events.PointResolved{BaseEvent: events.NewBaseEvent()})
}

func TestMapData(t *testing.T) {
	points := &fakePoints{recent: []repository.TrackedPoint{{Latitude: 1, Longitude: 2}}}
	zones := &fakeZones{zones: []geo.Zone{{ID: 1, Name: "النفود", ProtectionLevel: geo.LevelHigh}}}
	svc := NewService(points, zones, logger.New("development"))

	data, err := svc.MapData(context.Background(), 10)
	if err != nil {
		t.Fatalf("MapData returned error: %v", err)
	}
	if len(data.Zones) != 1 || len(data.Points) != 1 {
		t.Errorf("MapData = %d zones, %d points; want 1 and 1", len(data.Zones), len(data.Points))
	}
}

func TestMapDataPropagatesFailure(t *testing.T) {
	zones := &fakeZones{err: errors.New("query failed")}
	svc := NewService(&fakePoints{}, zones, logger.New("development"))

	if _, err := svc.MapData(context.Background(), 10); err == nil {
		t.Fatal("MapData returned nil error")
	}
}
