package services

import (
	"testing"

	"github.com/SangBejoo/kingston-parking/models"
)

func TestDriftStaysInBoundsAndSkipsSensors(t *testing.T) {
	catalog, err := models.NewCatalog([]models.ParkingLocation{
		{ID: "small", Kind: models.KindStreet, TotalSpots: 3, AvailableSpots: 1},
		{ID: "big", Kind: models.KindLot, TotalSpots: 100, AvailableSpots: 50},
		{ID: "sensor", Kind: models.KindStreet, TotalSpots: 4, AvailableSpots: 2, SensorBacked: true},
	})
	if err != nil {
		t.Fatal(err)
	}

	drift := NewDrift(catalog, 42)
	changed := 0
	prev, _ := catalog.Get("big")
	for i := 0; i < 100; i++ {
		changed += drift.Step()
		for _, loc := range catalog.Snapshot() {
			if loc.AvailableSpots < 0 || loc.AvailableSpots > loc.TotalSpots {
				t.Fatalf("%s drifted to %d", loc.ID, loc.AvailableSpots)
			}
		}
		big, _ := catalog.Get("big")
		if d := big.AvailableSpots - prev.AvailableSpots; d > 2 || d < -2 {
			t.Fatalf("step of %d exceeds the maximum", d)
		}
		prev = big
	}
	if changed == 0 {
		t.Fatal("drift never changed anything")
	}
	if s, _ := catalog.Get("sensor"); s.AvailableSpots != 2 {
		t.Fatalf("sensor-backed location drifted to %d", s.AvailableSpots)
	}
}
