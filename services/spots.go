package services

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/SangBejoo/kingston-parking/models"
)

// spotInset keeps markers away from the segment vertices (intersections)
const spotInset = 0.2

type segment struct {
	from, to orb.Point
	length   float64
}

// SpotPositions spreads TotalSpots markers evenly by arc length along a
// street's path. Spot i sits at (i+0.5)/TotalSpots of the path length, held
// within [0.2, 0.8] of the segment it falls on. Lots, paths with fewer than
// two points or no length, and locations without spots yield nothing.
// Otherwise exactly TotalSpots points are returned in a stable order.
func SpotPositions(loc *models.ParkingLocation) []orb.Point {
	if !loc.IsStreet() || len(loc.Path) < 2 || loc.TotalSpots <= 0 {
		return nil
	}

	var segments []segment
	total := 0.0
	for i := 0; i+1 < len(loc.Path); i++ {
		length := Distance(loc.Path[i], loc.Path[i+1])
		if length <= 0 {
			continue
		}
		segments = append(segments, segment{from: loc.Path[i], to: loc.Path[i+1], length: length})
		total += length
	}
	if total <= 0 {
		return nil
	}

	points := make([]orb.Point, 0, loc.TotalSpots)
	k, walked := 0, 0.0
	for i := 0; i < loc.TotalSpots; i++ {
		target := (float64(i) + 0.5) / float64(loc.TotalSpots) * total
		for k < len(segments)-1 && walked+segments[k].length <= target {
			walked += segments[k].length
			k++
		}
		s := segments[k]
		f := (target - walked) / s.length
		if f < spotInset {
			f = spotInset
		} else if f > 1-spotInset {
			f = 1 - spotInset
		}
		points = append(points, interpolate(s.from, s.to, f))
	}
	return points
}

// VisibleSpots returns the markers for the spots displayed as free at t
func VisibleSpots(loc *models.ParkingLocation, t time.Time) []orb.Point {
	positions := SpotPositions(loc)
	n := Evaluate(loc, t).DisplayedAvailable
	if n > len(positions) {
		n = len(positions)
	}
	return positions[:n]
}

func interpolate(a, b orb.Point, f float64) orb.Point {
	return orb.Point{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
	}
}
