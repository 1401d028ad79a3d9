package models

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/paulmach/orb"
)

func testLocations() []ParkingLocation {
	return []ParkingLocation{
		{ID: "princess-st", Name: "Princess St", Kind: KindStreet, TotalSpots: 40, AvailableSpots: 12,
			Path: orb.LineString{{-76.4801, 44.2302}, {-76.4858, 44.2330}}},
		{ID: "chown-garage", Name: "Chown Garage", Kind: KindLot, TotalSpots: 240, AvailableSpots: 96,
			Accessibility: &Accessibility{EVCharging: true}},
	}
}

func TestNewCatalogValidates(t *testing.T) {
	tests := []struct {
		name string
		locs []ParkingLocation
		want error
	}{
		{"duplicate id", []ParkingLocation{
			{ID: "a", Kind: KindLot, TotalSpots: 1},
			{ID: "a", Kind: KindLot, TotalSpots: 2},
		}, ErrDuplicateID},
		{"zero capacity", []ParkingLocation{{ID: "a", Kind: KindLot}}, ErrInvalidCapacity},
		{"missing id", []ParkingLocation{{Kind: KindStreet, TotalSpots: 3}}, ErrMissingID},
		{"unknown kind", []ParkingLocation{{ID: "a", Kind: "garage", TotalSpots: 3}}, ErrUnknownKind},
		{"window without days", []ParkingLocation{{ID: "a", Kind: KindLot, TotalSpots: 3,
			OperatingHours: []OperatingWindow{{Start: "07:00", End: "18:00"}}}}, ErrWindowDays},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.locs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewCatalog error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewCatalogClampsSeedAvailability(t *testing.T) {
	c, err := NewCatalog([]ParkingLocation{{ID: "a", Kind: KindLot, TotalSpots: 5, AvailableSpots: 9}})
	if err != nil {
		t.Fatal(err)
	}
	if loc, _ := c.Get("a"); loc.AvailableSpots != 5 {
		t.Fatalf("AvailableSpots = %d, want 5", loc.AvailableSpots)
	}
}

func TestApplySensorUpdate(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		observed int
		applied  bool
		want     int
	}{
		{"in range", "princess-st", 7, true, 7},
		{"above capacity", "princess-st", 55, true, 40},
		{"negative", "princess-st", -3, true, 0},
		{"unknown id", "nowhere", 3, false, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog(testLocations())
			if err != nil {
				t.Fatal(err)
			}
			before := c.Snapshot()
			if got := c.ApplySensorUpdate(tt.id, tt.observed); got != tt.applied {
				t.Fatalf("ApplySensorUpdate = %v, want %v", got, tt.applied)
			}
			loc, _ := c.Get("princess-st")
			if loc.AvailableSpots != tt.want {
				t.Errorf("AvailableSpots = %d, want %d", loc.AvailableSpots, tt.want)
			}
			if !tt.applied && !reflect.DeepEqual(before, c.Snapshot()) {
				t.Error("unknown id changed the catalog")
			}
		})
	}
}

func TestApplySensorUpdateIsIdempotent(t *testing.T) {
	c, err := NewCatalog(testLocations())
	if err != nil {
		t.Fatal(err)
	}
	c.ApplySensorUpdate("chown-garage", 50)
	once := c.Snapshot()
	c.ApplySensorUpdate("chown-garage", 50)
	if !reflect.DeepEqual(once, c.Snapshot()) {
		t.Fatal("applying the same observation twice changed the state")
	}
}

func TestApplySensorBatch(t *testing.T) {
	c, err := NewCatalog(testLocations())
	if err != nil {
		t.Fatal(err)
	}
	applied, ignored := c.ApplySensorBatch(map[string]int{
		"princess-st":  3,
		"chown-garage": 500,
		"ghost-lot":    1,
		"another":      2,
	})
	if want := []string{"chown-garage", "princess-st"}; !reflect.DeepEqual(applied, want) {
		t.Errorf("applied = %v, want %v", applied, want)
	}
	if want := []string{"another", "ghost-lot"}; !reflect.DeepEqual(ignored, want) {
		t.Errorf("ignored = %v, want %v", ignored, want)
	}
	if loc, _ := c.Get("chown-garage"); loc.AvailableSpots != 240 {
		t.Errorf("chown-garage = %d, want 240", loc.AvailableSpots)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	c, err := NewCatalog(testLocations())
	if err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	snap[0].AvailableSpots = 0
	snap[0].Path[0] = orb.Point{0, 0}
	snap[1].Accessibility.EVCharging = false

	fresh := c.Snapshot()
	if fresh[0].AvailableSpots != 12 || fresh[0].Path[0] == (orb.Point{0, 0}) {
		t.Error("mutating a snapshot leaked into the catalog street")
	}
	if !fresh[1].Accessibility.EVCharging {
		t.Error("mutating a snapshot leaked into the catalog lot")
	}
}

func TestSnapshotKeepsSeedOrder(t *testing.T) {
	c, err := NewCatalog(testLocations())
	if err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if len(snap) != 2 || snap[0].ID != "princess-st" || snap[1].ID != "chown-garage" {
		t.Fatalf("unexpected order: %v", snap)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}
}

func TestClergyStreetSensorSequence(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	c.ApplySensorUpdate("clergy-st-w", 1)
	c.ApplySensorUpdate("clergy-st-w", 0)
	settled := c.Snapshot()
	if loc, _ := c.Get("clergy-st-w"); loc.AvailableSpots != 0 {
		t.Fatalf("AvailableSpots = %d, want 0", loc.AvailableSpots)
	}
	c.ApplySensorUpdate("clergy-st-w", 0)
	if !reflect.DeepEqual(settled, c.Snapshot()) {
		t.Fatal("duplicate observation changed the catalog")
	}
}

func TestAdjust(t *testing.T) {
	c, err := NewCatalog(testLocations())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		id      string
		delta   int
		changed bool
		want    int
	}{
		{"up", "princess-st", 2, true, 14},
		{"down", "princess-st", -4, true, 10},
		{"clamped at zero", "princess-st", -50, true, 0},
		{"already at zero", "princess-st", -1, false, 0},
		{"clamped at capacity", "princess-st", 99, true, 40},
		{"unknown id", "nowhere", 1, false, 40},
	}
	for _, tt := range tests {
		if got := c.Adjust(tt.id, tt.delta); got != tt.changed {
			t.Errorf("%s: Adjust = %v, want %v", tt.name, got, tt.changed)
		}
		if loc, _ := c.Get("princess-st"); loc.AvailableSpots != tt.want {
			t.Errorf("%s: AvailableSpots = %d, want %d", tt.name, loc.AvailableSpots, tt.want)
		}
	}
}

func TestAdjustBuildsOnConcurrentWrites(t *testing.T) {
	c, err := NewCatalog(testLocations())
	if err != nil {
		t.Fatal(err)
	}
	stale := c.Snapshot() // a reader's view from before the sensor write
	c.ApplySensorUpdate("chown-garage", 100)
	c.Adjust(stale[1].ID, 1)
	if loc, _ := c.Get("chown-garage"); loc.AvailableSpots != 101 {
		t.Fatalf("AvailableSpots = %d, want the sensor value plus one", loc.AvailableSpots)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); c.Adjust("chown-garage", 1) }()
		go func() { defer wg.Done(); c.Adjust("chown-garage", -1) }()
	}
	wg.Wait()
	if loc, _ := c.Get("chown-garage"); loc.AvailableSpots != 101 {
		t.Fatalf("AvailableSpots = %d after balanced adjustments, want 101", loc.AvailableSpots)
	}
}
