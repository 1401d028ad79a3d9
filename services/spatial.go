package services

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/SangBejoo/kingston-parking/models"
)

// Distance returns the haversine distance between two points in metres
func Distance(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

// WithinRadius keeps the locations whose coordinates lie within radius
// metres of center, in catalog order
func WithinRadius(locations []models.ParkingLocation, center orb.Point, radius float64) []models.ParkingLocation {
	var out []models.ParkingLocation
	for _, loc := range locations {
		if Distance(loc.Coordinates, center) <= radius {
			out = append(out, loc)
		}
	}
	return out
}

// Ranked pairs a location with its distance from some origin
type Ranked struct {
	Location models.ParkingLocation
	Meters   float64
}

// ByDistance orders locations nearest first. Equal distances keep catalog order.
func ByDistance(locations []models.ParkingLocation, origin orb.Point) []Ranked {
	ranked := make([]Ranked, len(locations))
	for i, loc := range locations {
		ranked[i] = Ranked{Location: loc, Meters: Distance(loc.Coordinates, origin)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Meters < ranked[j].Meters
	})
	return ranked
}
