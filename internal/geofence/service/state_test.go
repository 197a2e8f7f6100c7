package service

import (
	"sync"
	"testing"

	geo "geoas_backend/internal/geofence/domain"
)

func TestStateStoreGetBeforeSet(t *testing.T) {
	store := NewStateStore()

	decision := store.Get()
	if decision.Inside || decision.Zone != nil || decision.ProtectionLevel != nil {
		t.Errorf("fresh store decision = %+v, want the all-absent decision", decision)
	}
}

func TestStateStoreLastWriteWins(t *testing.T) {
	store := NewStateStore()

	store.Set(geo.InsideDecision("الأولى", geo.LevelLow))
	store.Set(geo.InsideDecision("الثانية", geo.LevelHigh))

	got := store.Get()
	if got.Zone == nil || *got.Zone != "الثانية" {
		t.Errorf("Zone = %v, want الثانية", got.Zone)
	}

	store.Set(geo.OutsideDecision())
	got = store.Get()
	if got.Inside || got.Zone != nil {
		t.Errorf("decision after outside set = %+v", got)
	}
}

func TestStateStoreConcurrentAccess(t *testing.T) {
	store := NewStateStore()
	inside := geo.InsideDecision("النفود", geo.LevelHigh)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				store.Set(inside)
			} else {
				store.Set(geo.OutsideDecision())
			}
		}(i)
		go func() {
			defer wg.Done()
			decision := store.Get()
			// Readers must never observe a torn decision.
			if decision.Inside != (decision.Zone != nil) {
				t.Error("observed a partial decision")
			}
		}()
	}
	wg.Wait()
}
