package assistant

import (
	"github.com/paulmach/orb"

	"github.com/SangBejoo/kingston-parking/models"
)

// Landmark is a well known place people ask to park near
type Landmark struct {
	Name    string
	Aliases []string // normalized, most specific first
	Point   orb.Point
}

// Landmarks around downtown Kingston
var Landmarks = []Landmark{
	{Name: "City Hall", Aliases: []string{"kingston city hall", "city hall"}, Point: orb.Point{-76.4807, 44.2303}},
	{Name: "Springer Market Square", Aliases: []string{"springer market square", "market square", "the market"}, Point: orb.Point{-76.4812, 44.2306}},
	{Name: "Queen's University", Aliases: []string{"queens university", "queens campus", "queens"}, Point: orb.Point{-76.4951, 44.2253}},
	{Name: "Kingston General Hospital", Aliases: []string{"kingston general hospital", "kingston general", "kgh", "hospital"}, Point: orb.Point{-76.4920, 44.2246}},
	{Name: "Leon's Centre", Aliases: []string{"leons centre", "leons center", "leons"}, Point: orb.Point{-76.4799, 44.2326}},
	{Name: "the Grand Theatre", Aliases: []string{"grand theatre", "grand theater"}, Point: orb.Point{-76.4842, 44.2323}},
	{Name: "the Central Library", Aliases: []string{"central library", "public library", "library"}, Point: orb.Point{-76.4857, 44.2307}},
	{Name: "Confederation Basin", Aliases: []string{"confederation basin", "waterfront", "marina"}, Point: orb.Point{-76.4790, 44.2296}},
	{Name: "Fort Henry", Aliases: []string{"fort henry"}, Point: orb.Point{-76.4597, 44.2311}},
}

type entityKeyword struct {
	keyword string
	match   func(loc *models.ParkingLocation) bool
}

// entityKeywords resolves names in a question to catalog entries. Order is
// precedence: specific names come before the generic "street" and "lot".
var entityKeywords = []entityKeyword{
	{"beamish munro", byID("beamish-munro")},
	{"beamish", byID("beamish-munro")},
	{"kgh garage", byID("kgh-garage")},
	{"stuart st garage", byID("kgh-garage")},
	{"city hall lot", byID("city-hall-lot")},
	{"chown", byID("chown-garage")},
	{"hanson", byID("hanson-garage")},
	{"anglin", byID("anglin-lot")},
	{"clergy", byName("clergy")},
	{"princess", byName("princess")},
	{"brock", byName("brock")},
	{"johnson", byName("johnson")},
	{"wellington", byName("wellington")},
	{"ontario", byName("ontario")},
	{"earl", byName("earl")},
	{"queen", byName("queen")},
	{"king", byName("king")},
	{"garages", byKind(models.KindLot)},
	{"garage", byKind(models.KindLot)},
	{"lots", byKind(models.KindLot)},
	{"lot", byKind(models.KindLot)},
	{"streets", byKind(models.KindStreet)},
	{"street", byKind(models.KindStreet)},
	{"on street", byKind(models.KindStreet)},
}

func byID(id string) func(*models.ParkingLocation) bool {
	return func(loc *models.ParkingLocation) bool { return loc.ID == id }
}

func byName(word string) func(*models.ParkingLocation) bool {
	return func(loc *models.ParkingLocation) bool { return hasPhrase(normalize(loc.Name), word) }
}

func byKind(kind models.Kind) func(*models.ParkingLocation) bool {
	return func(loc *models.ParkingLocation) bool { return loc.Kind == kind }
}

// resolveEntities returns the subset selected by the first keyword found in
// the question that matches at least one location, and that keyword
func resolveEntities(text string, locations []models.ParkingLocation) ([]models.ParkingLocation, string) {
	for _, k := range entityKeywords {
		if !hasPhrase(text, k.keyword) {
			continue
		}
		var subset []models.ParkingLocation
		for i := range locations {
			if k.match(&locations[i]) {
				subset = append(subset, locations[i])
			}
		}
		if len(subset) > 0 {
			return subset, k.keyword
		}
	}
	return nil, ""
}

// findLandmark returns the first landmark named in the question along with
// the alias that matched
func findLandmark(text string, landmarks []Landmark) (*Landmark, string) {
	for i := range landmarks {
		for _, alias := range landmarks[i].Aliases {
			if hasPhrase(text, alias) {
				return &landmarks[i], alias
			}
		}
	}
	return nil, ""
}
