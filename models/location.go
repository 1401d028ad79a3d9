package models

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// Kind tells streets (always reporting) apart from lots (which enforce hours)
type Kind string

const (
	KindStreet Kind = "street"
	KindLot    Kind = "lot"
)

// ParkingLocation represents one parking facility in the catalog
type ParkingLocation struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Address        string            `json:"address" yaml:"address"`
	Kind           Kind              `json:"kind" yaml:"kind"`
	TotalSpots     int               `json:"totalSpots" yaml:"totalSpots"`
	AvailableSpots int               `json:"availableSpots" yaml:"availableSpots"`
	Coordinates    orb.Point         `json:"-" yaml:"-"`
	OperatingHours []OperatingWindow `json:"operatingHours,omitempty" yaml:"operatingHours"`
	Pricing        *Pricing          `json:"pricing,omitempty" yaml:"pricing"`
	MaxStayHours   float64           `json:"maxStayHours,omitempty" yaml:"maxStayHours"`
	Path           orb.LineString    `json:"-" yaml:"-"`
	Accessibility  *Accessibility    `json:"accessibility,omitempty" yaml:"accessibility"`
	SensorBacked   bool              `json:"sensorBacked" yaml:"sensorBacked"`
}

// OperatingWindow is one block of opening hours. End before Start means the
// window runs past midnight.
type OperatingWindow struct {
	Days  []int  `json:"daysOfWeek" yaml:"daysOfWeek"` // 0 = Sunday
	Start string `json:"start" yaml:"start"`           // "HH:MM"
	End   string `json:"end" yaml:"end"`
}

// Accessibility holds the lot features used for filtering
type Accessibility struct {
	EVCharging        bool    `json:"evCharging" yaml:"evCharging"`
	AccessibleParking bool    `json:"accessibleParking" yaml:"accessibleParking"`
	HeightClearanceM  float64 `json:"heightClearanceM,omitempty" yaml:"heightClearanceM"`
}

// LatLng is the wire form of a coordinate. orb stores points as [lon, lat],
// which is easy to get backwards in JSON payloads.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

func (ll LatLng) Point() orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

func ToLatLng(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// MarshalJSON adds the coordinate and path in lat/lng form
func (l ParkingLocation) MarshalJSON() ([]byte, error) {
	type plain ParkingLocation
	out := struct {
		plain
		Coordinates LatLng   `json:"coordinates"`
		Path        []LatLng `json:"path,omitempty"`
	}{plain: plain(l), Coordinates: ToLatLng(l.Coordinates)}
	for _, p := range l.Path {
		out.Path = append(out.Path, ToLatLng(p))
	}
	return json.Marshal(out)
}

// Clone returns a deep copy so readers never share slices with the catalog
func (l ParkingLocation) Clone() ParkingLocation {
	c := l
	if l.OperatingHours != nil {
		c.OperatingHours = make([]OperatingWindow, len(l.OperatingHours))
		for i, w := range l.OperatingHours {
			w.Days = append([]int(nil), w.Days...)
			c.OperatingHours[i] = w
		}
	}
	if l.Pricing != nil {
		c.Pricing = l.Pricing.clone()
	}
	if l.Path != nil {
		c.Path = append(orb.LineString(nil), l.Path...)
	}
	if l.Accessibility != nil {
		a := *l.Accessibility
		c.Accessibility = &a
	}
	return c
}

func (l ParkingLocation) IsStreet() bool {
	return l.Kind == KindStreet
}
