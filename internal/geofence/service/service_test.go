package service

import (
	"context"
	"errors"
	"testing"

	"geoas_backend/internal/events"
	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/platform/apperr"
	"geoas_backend/platform/logger"
)

type fakeZoneFinder struct {
	zones []geo.Zone
	err   error
}

func (f *fakeZoneFinder) FindIntersectingZones(_ context.Context, _ geo.Point) ([]geo.Zone, error) {
	return f.zones, f.err
}

func resolve(t *testing.T, zones []geo.Zone) geo.LocationDecision {
	t.Helper()
	r := NewResolver(&fakeZoneFinder{zones: zones})
	decision, err := r.Resolve(context.Background(), geo.Point{Latitude: 27.5, Longitude: 41.2})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	return decision
}

func TestResolveSingleZone(t *testing.T) {
	decision := resolve(t, []geo.Zone{
		{ID: 1, Name: "النفود", ProtectionLevel: geo.LevelHigh},
	})

	if !decision.Inside {
		t.Fatal("Inside = false, want true")
	}
	if decision.Zone == nil || *decision.Zone != "النفود" {
		t.Errorf("Zone = %v, want النفود", decision.Zone)
	}
	if decision.ProtectionLevel == nil || *decision.ProtectionLevel != geo.LevelHigh {
		t.Errorf("ProtectionLevel = %v, want high", decision.ProtectionLevel)
	}
}

func TestResolveTieBreakHighestLevelWins(t *testing.T) {
	zones := []geo.Zone{
		{ID: 1, Name: "وسطى", ProtectionLevel: geo.LevelMedium},
		{ID: 2, Name: "عليا", ProtectionLevel: geo.LevelHigh},
		{ID: 3, Name: "دنيا", ProtectionLevel: geo.LevelLow},
	}
	reversed := []geo.Zone{zones[2], zones[1], zones[0]}

	for _, order := range [][]geo.Zone{zones, reversed} {
		decision := resolve(t, order)
		if decision.Zone == nil || *decision.Zone != "عليا" {
			t.Errorf("Zone = %v, want the high-level zone regardless of order", decision.Zone)
		}
	}
}

func TestResolveTieBreakStableWithinLevel(t *testing.T) {
	// Equal levels: the first zone in store order wins.
	decision := resolve(t, []geo.Zone{
		{ID: 7, Name: "الأولى", ProtectionLevel: geo.LevelMedium},
		{ID: 9, Name: "الثانية", ProtectionLevel: geo.LevelMedium},
	})

	if decision.Zone == nil || *decision.Zone != "الأولى" {
		t.Errorf("Zone = %v, want the first zone in store order", decision.Zone)
	}
}

func TestResolveUnknownLevelRanksLowest(t *testing.T) {
	decision := resolve(t, []geo.Zone{
		{ID: 1, Name: "غامضة", ProtectionLevel: geo.LevelUnknown},
		{ID: 2, Name: "دنيا", ProtectionLevel: geo.LevelLow},
	})

	if decision.Zone == nil || *decision.Zone != "دنيا" {
		t.Errorf("Zone = %v, want the low zone over the unknown one", decision.Zone)
	}
}

func TestResolveOutside(t *testing.T) {
	decision := resolve(t, nil)

	if decision.Inside {
		t.Error("Inside = true, want false")
	}
	if decision.Zone != nil || decision.ProtectionLevel != nil {
		t.Errorf("outside decision carries zone data: %+v", decision)
	}
}

func TestResolveIdempotent(t *testing.T) {
	finder := &fakeZoneFinder{zones: []geo.Zone{
		{ID: 1, Name: "النفود", ProtectionLevel: geo.LevelHigh},
		{ID: 2, Name: "وسطى", ProtectionLevel: geo.LevelMedium},
	}}
	r := NewResolver(finder)
	point := geo.Point{Latitude: 27.5, Longitude: 41.2}

	first, err := r.Resolve(context.Background(), point)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	second, err := r.Resolve(context.Background(), point)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if first.Inside != second.Inside || *first.Zone != *second.Zone || *first.ProtectionLevel != *second.ProtectionLevel {
		t.Errorf("decisions differ: %+v vs %+v", first, second)
	}
}

func TestResolveStateInvariant(t *testing.T) {
	cases := [][]geo.Zone{
		nil,
		{{ID: 1, Name: "النفود", ProtectionLevel: geo.LevelHigh}},
		{{ID: 1, Name: "غامضة", ProtectionLevel: geo.LevelUnknown}},
	}

	for _, zones := range cases {
		decision := resolve(t, zones)
		if decision.Inside != (decision.Zone != nil) {
			t.Errorf("inside/zone invariant violated: %+v", decision)
		}
		if (decision.Zone == nil) != (decision.ProtectionLevel == nil) {
			t.Errorf("zone/level must be both set or both absent: %+v", decision)
		}
	}
}

func TestResolveInvalidCoordinates(t *testing.T) {
	r := NewResolver(&fakeZoneFinder{})

	cases := []geo.Point{
		{Latitude: 91, Longitude: 0},
		{Latitude: -91, Longitude: 0},
		{Latitude: 0, Longitude: 181},
		{Latitude: 0, Longitude: -181},
	}

	for _, point := range cases {
		_, err := r.Resolve(context.Background(), point)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("Resolve(%+v) err = %v, want a validation error", point, err)
		}
	}
}

func TestResolveBoundaryCoordinatesAccepted(t *testing.T) {
	r := NewResolver(&fakeZoneFinder{})

	cases := []geo.Point{
		{Latitude: 90, Longitude: 180},
		{Latitude: -90, Longitude: -180},
		{Latitude: 0, Longitude: 0},
	}

	for _, point := range cases {
		if _, err := r.Resolve(context.Background(), point); err != nil {
			t.Errorf("Resolve(%+v) returned error: %v", point, err)
		}
	}
}

func TestResolveStoreUnavailable(t *testing.T) {
	r := NewResolver(&fakeZoneFinder{err: errors.New("connection refused")})

	_, err := r.Resolve(context.Background(), geo.Point{Latitude: 1, Longitude: 1})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("err = %v, want KindUnavailable", err)
	}
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func TestCheckPointStoresAndPublishes(t *testing.T) {
	finder := &fakeZoneFinder{zones: []geo.Zone{{ID: 1, Name: "النفود", ProtectionLevel: geo.LevelHigh}}}
	state := NewStateStore()
	bus := &captureBus{}
	svc := NewService(NewResolver(finder), state, bus, logger.New("development"))

	decision, err := svc.CheckPoint(context.Background(), geo.Point{Latitude: 27.5, Longitude: 41.2})
	if err != nil {
		t.Fatalf("CheckPoint returned error: %v", err)
	}

	if got := svc.Current(); got.Zone == nil || *got.Zone != *decision.Zone {
		t.Errorf("stored decision = %+v, want %+v", got, decision)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	event, ok := bus.published[0].(events.PointResolved)
	if !ok {
		t.Fatalf("published event type %T", bus.published[0])
	}
	if !event.Inside || event.ZoneName == nil || *event.ZoneName != "النفود" {
		t.Errorf("event = %+v", event)
	}
}

func TestCheckPointFailureLeavesState(t *testing.T) {
	finder := &fakeZoneFinder{zones: []geo.Zone{{ID: 1, Name: "النفود", ProtectionLevel: geo.LevelHigh}}}
	state := NewStateStore()
	svc := NewService(NewResolver(finder), state, &captureBus{}, logger.New("development"))

	if _, err := svc.CheckPoint(context.Background(), geo.Point{Latitude: 27.5, Longitude: 41.2}); err != nil {
		t.Fatalf("CheckPoint returned error: %v", err)
	}

	finder.err = errors.New("connection refused")
	finder.zones = nil
	if _, err := svc.CheckPoint(context.Background(), geo.Point{Latitude: 1, Longitude: 1}); err == nil {
		t.Fatal("CheckPoint returned nil error during store outage")
	}

	if got := svc.Current(); got.Zone == nil || *got.Zone != "النفود" {
		t.Errorf("failed check overwrote state: %+v", got)
	}
}
