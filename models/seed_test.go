package models

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedSeedLoads(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() < 10 {
		t.Fatalf("Len = %d, want the full downtown seed", c.Len())
	}

	var streets, lots int
	for _, loc := range c.Snapshot() {
		if loc.AvailableSpots < 0 || loc.AvailableSpots > loc.TotalSpots {
			t.Errorf("%s: available %d outside [0, %d]", loc.ID, loc.AvailableSpots, loc.TotalSpots)
		}
		if loc.Coordinates.Lat() < 44 || loc.Coordinates.Lat() > 45 || loc.Coordinates.Lon() > -76 {
			t.Errorf("%s: coordinates %v not in Kingston, lat/lng swapped?", loc.ID, loc.Coordinates)
		}
		switch loc.Kind {
		case KindStreet:
			streets++
			if len(loc.Path) < 2 {
				t.Errorf("%s: street without a path", loc.ID)
			}
		case KindLot:
			lots++
		}
	}
	if streets == 0 || lots == 0 {
		t.Errorf("streets = %d, lots = %d", streets, lots)
	}
}

func TestParseSeed(t *testing.T) {
	doc := `
locations:
  - id: test-lot
    name: Test Lot
    kind: lot
    totalSpots: 10
    availableSpots: 4
    coordinates: {lat: 44.23, lng: -76.48}
    operatingHours:
      - daysOfWeek: [1, 2]
        start: "18:00"
        end: "06:00"
    pricing:
      tiers:
        - rate: 1.25
          unit: halfHour
          dailyMax: 15
    accessibility:
      evCharging: true
      heightClearanceM: 2.1
`
	locs, err := ParseSeed([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("got %d locations", len(locs))
	}
	loc := locs[0]
	if loc.Coordinates.Lat() != 44.23 || loc.Coordinates.Lon() != -76.48 {
		t.Errorf("Coordinates = %v", loc.Coordinates)
	}
	if len(loc.OperatingHours) != 1 || loc.OperatingHours[0].End != "06:00" {
		t.Errorf("OperatingHours = %+v", loc.OperatingHours)
	}
	tier := loc.Pricing.Tiers[0]
	if tier.Unit != UnitHalfHour || tier.DailyMax == nil || *tier.DailyMax != 15 {
		t.Errorf("tier = %+v", tier)
	}
	if !loc.Accessibility.EVCharging || loc.Accessibility.HeightClearanceM != 2.1 {
		t.Errorf("Accessibility = %+v", loc.Accessibility)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := "locations:\n  - {id: a, name: A, kind: street, totalSpots: 2}\n  - {id: a, name: B, kind: lot, totalSpots: 3}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("LoadCatalog error = %v, want ErrDuplicateID", err)
	}
	dayless := filepath.Join(dir, "dayless.yaml")
	doc = "locations:\n  - id: a\n    name: A\n    kind: lot\n    totalSpots: 2\n    operatingHours:\n      - {start: \"07:00\", end: \"18:00\"}\n"
	if err := os.WriteFile(dayless, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(dayless); !errors.Is(err, ErrWindowDays) {
		t.Fatalf("LoadCatalog error = %v, want ErrWindowDays", err)
	}
	if _, err := LoadCatalog(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("LoadCatalog accepted a missing file")
	}
}

func TestLocationJSONUsesLatLng(t *testing.T) {
	c, err := NewCatalog(testLocations())
	if err != nil {
		t.Fatal(err)
	}
	loc, _ := c.Get("princess-st")
	buf, err := json.Marshal(loc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(buf), `"path":[{"lat":44.2302,"lng":-76.4801}`) {
		t.Fatalf("path not encoded as lat/lng: %s", buf)
	}
}
