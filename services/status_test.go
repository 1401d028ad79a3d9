package services

import (
	"reflect"
	"testing"

	"github.com/SangBejoo/kingston-parking/models"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		available, total int
		want             Status
	}{
		{0, 1, StatusFull},
		{0, 240, StatusFull},
		{-1, 10, StatusFull},
		{3, 0, StatusFull},
		{1, 5, StatusLimited},
		{2, 10, StatusLimited},
		{3, 10, StatusAvailable},
		{10, 10, StatusAvailable},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.available, tt.total); got != tt.want {
			t.Errorf("StatusOf(%d, %d) = %s, want %s", tt.available, tt.total, got, tt.want)
		}
	}
}

func TestEvaluateClosedLot(t *testing.T) {
	loc := lot(models.OperatingWindow{Days: []int{1, 2, 3, 4, 5}, Start: "07:00", End: "18:00"})
	loc.AvailableSpots = 8
	before := loc.Clone()

	view := Evaluate(loc, at(sun, 12, 0))
	if view.IsOpen || view.DisplayedAvailable != 0 || view.Status != StatusFull || view.StatusLabel != "Closed" {
		t.Fatalf("closed view = %+v", view)
	}
	if !reflect.DeepEqual(before, *loc) {
		t.Fatal("Evaluate mutated the location")
	}
}

func TestEvaluateOpenLot(t *testing.T) {
	loc := lot(models.OperatingWindow{Days: []int{1, 2, 3, 4, 5}, Start: "07:00", End: "18:00"})
	loc.AvailableSpots = 2

	view := Evaluate(loc, at(mon, 12, 0))
	want := LocationView{
		ID: "lot", Name: "Lot", Kind: models.KindLot,
		Coordinates:        models.LatLng{},
		IsOpen:             true,
		DisplayedAvailable: 2,
		TotalSpots:         10,
		Status:             StatusLimited,
		StatusLabel:        "Limited",
		PriceLabel:         "Free",
		HoursLabel:         "Mon–Fri 7:00 a.m.–6:00 p.m.",
	}
	if view != want {
		t.Fatalf("Evaluate = %+v\nwant %+v", view, want)
	}
}

func TestEvaluateAllKeepsOrder(t *testing.T) {
	locs := []models.ParkingLocation{
		{ID: "b", Kind: models.KindStreet, TotalSpots: 4, AvailableSpots: 4},
		{ID: "a", Kind: models.KindStreet, TotalSpots: 4},
	}
	views := EvaluateAll(locs, at(mon, 9, 0))
	if len(views) != 2 || views[0].ID != "b" || views[1].ID != "a" {
		t.Fatalf("EvaluateAll = %+v", views)
	}
	if views[1].Status != StatusFull || views[0].Status != StatusAvailable {
		t.Fatalf("statuses = %s, %s", views[0].Status, views[1].Status)
	}
}

func TestHasRoom(t *testing.T) {
	closed := lot(models.OperatingWindow{Days: []int{1}, Start: "07:00", End: "08:00"})
	empty := lot()
	empty.AvailableSpots = 0

	if HasRoom(closed, at(tue, 7, 30)) {
		t.Error("closed lot has room")
	}
	if HasRoom(empty, at(tue, 7, 30)) {
		t.Error("full lot has room")
	}
	if !HasRoom(lot(), at(tue, 7, 30)) {
		t.Error("open lot with spots has no room")
	}
}
