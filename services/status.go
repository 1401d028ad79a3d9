package services

import (
	"time"

	"github.com/SangBejoo/kingston-parking/models"
)

// Status is the occupancy classification of a location
type Status string

const (
	StatusAvailable Status = "available"
	StatusLimited   Status = "limited"
	StatusFull      Status = "full"
)

// limitedRatio is the share of free spots at or below which a location is limited
const limitedRatio = 0.20

// StatusOf classifies a free-spot count against capacity
func StatusOf(available, total int) Status {
	if available <= 0 || total <= 0 {
		return StatusFull
	}
	if float64(available)/float64(total) <= limitedRatio {
		return StatusLimited
	}
	return StatusAvailable
}

// LocationView is what map markers and list cards render for a location
type LocationView struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Kind               models.Kind   `json:"kind"`
	Coordinates        models.LatLng `json:"coordinates"`
	IsOpen             bool          `json:"isOpen"`
	DisplayedAvailable int           `json:"displayedAvailable"`
	TotalSpots         int           `json:"totalSpots"`
	Status             Status        `json:"status"`
	StatusLabel        string        `json:"statusLabel"`
	PriceLabel         string        `json:"priceLabel"`
	HoursLabel         string        `json:"hoursLabel"`
}

// Evaluate derives the display state of a location at t. A closed location
// shows zero free spots and a full status while its stored count is kept.
func Evaluate(loc *models.ParkingLocation, t time.Time) LocationView {
	view := LocationView{
		ID:          loc.ID,
		Name:        loc.Name,
		Kind:        loc.Kind,
		Coordinates: models.ToLatLng(loc.Coordinates),
		IsOpen:      IsOpen(loc, t),
		TotalSpots:  loc.TotalSpots,
		PriceLabel:  PriceLabel(loc, t),
		HoursLabel:  HoursLabel(loc),
	}
	if !view.IsOpen {
		view.Status = StatusFull
		view.StatusLabel = "Closed"
		return view
	}
	view.DisplayedAvailable = loc.AvailableSpots
	view.Status = StatusOf(loc.AvailableSpots, loc.TotalSpots)
	view.StatusLabel = statusLabel(view.Status)
	return view
}

// EvaluateAll evaluates every location, keeping catalog order
func EvaluateAll(locations []models.ParkingLocation, t time.Time) []LocationView {
	views := make([]LocationView, len(locations))
	for i := range locations {
		views[i] = Evaluate(&locations[i], t)
	}
	return views
}

// HasRoom reports whether the location is open with at least one free spot
func HasRoom(loc *models.ParkingLocation, t time.Time) bool {
	return loc.AvailableSpots > 0 && IsOpen(loc, t)
}

func statusLabel(s Status) string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusLimited:
		return "Limited"
	default:
		return "Full"
	}
}
