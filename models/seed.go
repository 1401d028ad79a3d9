package models

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

//go:embed kingston.yaml
var defaultSeed []byte

type seedDocument struct {
	Locations []seedLocation `yaml:"locations"`
}

// seedLocation mirrors ParkingLocation with coordinates in lat/lng form
type seedLocation struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Address        string            `yaml:"address"`
	Kind           Kind              `yaml:"kind"`
	TotalSpots     int               `yaml:"totalSpots"`
	AvailableSpots int               `yaml:"availableSpots"`
	Coordinates    LatLng            `yaml:"coordinates"`
	OperatingHours []OperatingWindow `yaml:"operatingHours"`
	Pricing        *Pricing          `yaml:"pricing"`
	MaxStayHours   float64           `yaml:"maxStayHours"`
	Path           []LatLng          `yaml:"path"`
	Accessibility  *Accessibility    `yaml:"accessibility"`
	SensorBacked   bool              `yaml:"sensorBacked"`
}

func (s seedLocation) location() ParkingLocation {
	loc := ParkingLocation{
		ID:             s.ID,
		Name:           s.Name,
		Address:        s.Address,
		Kind:           s.Kind,
		TotalSpots:     s.TotalSpots,
		AvailableSpots: s.AvailableSpots,
		Coordinates:    s.Coordinates.Point(),
		OperatingHours: s.OperatingHours,
		Pricing:        s.Pricing,
		MaxStayHours:   s.MaxStayHours,
		Accessibility:  s.Accessibility,
		SensorBacked:   s.SensorBacked,
	}
	for _, p := range s.Path {
		loc.Path = append(loc.Path, p.Point())
	}
	return loc
}

// ParseSeed decodes a YAML catalog document
func ParseSeed(buf []byte) ([]ParkingLocation, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	locations := make([]ParkingLocation, 0, len(doc.Locations))
	for _, s := range doc.Locations {
		locations = append(locations, s.location())
	}
	return locations, nil
}

// LoadCatalog builds a catalog from a YAML file, or from the embedded
// downtown Kingston seed when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	buf := defaultSeed
	if path != "" {
		var err error
		buf, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
	}
	locations, err := ParseSeed(buf)
	if err != nil {
		return nil, err
	}
	return NewCatalog(locations)
}
