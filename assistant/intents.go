package assistant

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/SangBejoo/kingston-parking/models"
	"github.com/SangBejoo/kingston-parking/services"
)

var (
	helpWords      = []string{"help", "what can you do", "commands", "how does this work"}
	proximityWords = []string{"near", "nearby", "close to", "closest", "nearest", "around", "by", "beside", "next to", "walking distance", "parking", "park"}
	closestWords   = []string{"closest", "nearest", "near me", "nearby", "close to me", "around me"}
	mostWords      = []string{"most available", "most spots", "most spaces", "most space", "most room", "most open", "emptiest", "least busy", "least full"}
	backupWords    = []string{"what if", "backup", "alternative", "alternatives", "plan b", "otherwise"}
	evWords        = []string{"ev", "electric", "charging", "charger", "chargers"}
	accessWords    = []string{"accessible", "accessibility", "wheelchair", "handicap", "handicapped", "disabled", "disability", "mobility"}
	heightWords    = []string{"height", "clearance", "tall", "oversized", "van", "truck", "rv"}
	spotWords      = []string{"free spot", "free spots", "free space", "free spaces"}
	freeWords      = []string{"no charge", "without paying", "dont have to pay", "dont pay"}
	priceWords     = []string{"cost", "costs", "price", "prices", "pricing", "how much", "rate", "rates", "pay", "paid", "fee", "fees", "expensive", "cheap", "cheaper", "cheapest", "meter", "meters"}
	hoursWords     = []string{"hours", "open", "opening", "opens", "close", "closes", "closing", "closed", "when", "until"}
	statusWords    = []string{"available", "availability", "spot", "spots", "space", "spaces", "full", "busy", "status", "how many", "room", "empty", "vacant"}
)

func matchHelp(a *ask) bool { return hasAny(a.text, helpWords...) }

func answerHelp(*ask) (string, bool) { return helpText, true }

// matchLandmark skips landmarks that are only part of a named location,
// such as "city hall" inside "city hall lot"
func matchLandmark(a *ask) bool {
	if a.landmark == nil || hasPhrase(a.keyword, a.alias) {
		return false
	}
	return hasAny(a.text, proximityWords...)
}

func answerLandmark(a *ask) (string, bool) {
	lm := a.landmark
	radius := a.engine.Radius
	open := a.withRoom(services.WithinRadius(a.locations, lm.Point, radius))
	if len(open) == 0 {
		return fmt.Sprintf("There's no open parking with free spots within %.0f m of %s right now.", radius, lm.Name), true
	}

	ranked := make([]services.Ranked, len(open))
	for i, loc := range open {
		ranked[i] = services.Ranked{Location: loc, Meters: services.Distance(loc.Coordinates, lm.Point)}
	}
	if hasAny(a.text, "closest", "nearest") {
		ranked = services.ByDistance(open, lm.Point)
	}
	if len(ranked) > a.engine.MaxResults {
		ranked = ranked[:a.engine.MaxResults]
	}

	lines := []string{fmt.Sprintf("Parking within %.0f m of %s:", radius, lm.Name)}
	for _, r := range ranked {
		lines = append(lines, fmt.Sprintf("- %s: %s free, %s, %d m away",
			r.Location.Name, spots(r.Location.AvailableSpots), services.PriceLabel(&r.Location, a.at), int(math.Round(r.Meters))))
	}
	return strings.Join(lines, "\n"), true
}

func matchClosest(a *ask) bool { return hasAny(a.text, closestWords...) }

func answerClosest(a *ask) (string, bool) {
	if a.user == nil {
		return searchFirstText, true
	}
	open := a.withRoom(a.locations)
	if len(open) == 0 {
		return "Nothing has open spots right now. Try again in a few minutes.", true
	}
	nearest := services.ByDistance(open, *a.user)[0]
	loc := nearest.Location
	return fmt.Sprintf("The closest open parking is %s, about %d m away, with %s free (%s).",
		loc.Name, int(math.Round(nearest.Meters)), spots(loc.AvailableSpots), services.PriceLabel(&loc, a.at)), true
}

func matchMostAvailable(a *ask) bool { return hasAny(a.text, mostWords...) }

func answerMostAvailable(a *ask) (string, bool) {
	best := a.mostAvailable(models.KindStreet)
	if best == nil {
		best = a.mostAvailable(models.KindLot)
	}
	if best == nil {
		return "Everything is full or closed right now.", true
	}
	return fmt.Sprintf("%s has the most open spots right now: %d of %d.",
		best.Name, best.AvailableSpots, best.TotalSpots), true
}

// mostAvailable picks the open location of a kind with the most free spots.
// Ties go to the earlier catalog entry.
func (a *ask) mostAvailable(kind models.Kind) *models.ParkingLocation {
	var best *models.ParkingLocation
	for i := range a.locations {
		loc := &a.locations[i]
		if loc.Kind != kind || !services.HasRoom(loc, a.at) {
			continue
		}
		if best == nil || loc.AvailableSpots > best.AvailableSpots {
			best = loc
		}
	}
	return best
}

func matchIfFull(a *ask) bool {
	if hasPhrase(a.text, "full") && hasAny(a.text, "if", "in case") {
		return true
	}
	return hasAny(a.text, backupWords...)
}

func answerIfFull(a *ask) (string, bool) {
	var exclude string
	if len(a.subset) == 1 {
		exclude = a.subset[0].ID
	}
	var streets []models.ParkingLocation
	for _, loc := range a.withRoom(a.locations) {
		if loc.Kind == models.KindStreet && loc.ID != exclude {
			streets = append(streets, loc)
		}
	}
	if len(streets) == 0 {
		return "Every street nearby is full or closed right now. Try one of the garages.", true
	}
	sort.SliceStable(streets, func(i, j int) bool {
		return streets[i].AvailableSpots > streets[j].AvailableSpots
	})
	if len(streets) > 3 {
		streets = streets[:3]
	}
	names := make([]string, len(streets))
	for i, loc := range streets {
		names[i] = fmt.Sprintf("%s (%s)", loc.Name, spots(loc.AvailableSpots))
	}
	return "If it's full, try " + strings.Join(names, ", ") + ".", true
}

func matchAccessibility(a *ask) bool {
	return hasAny(a.text, evWords...) || hasAny(a.text, accessWords...) || hasAny(a.text, heightWords...)
}

func answerAccessibility(a *ask) (string, bool) {
	pool := a.pool()
	switch {
	case hasAny(a.text, evWords...):
		return a.featureList("EV charging", "EV charging", pool, func(acc *models.Accessibility) bool { return acc.EVCharging }), true
	case hasAny(a.text, accessWords...):
		return a.featureList("Accessible parking", "accessible parking", pool, func(acc *models.Accessibility) bool { return acc.AccessibleParking }), true
	}

	var parts []string
	for _, loc := range pool {
		if loc.Accessibility != nil && loc.Accessibility.HeightClearanceM > 0 {
			parts = append(parts, fmt.Sprintf("%s %.1f m", loc.Name, loc.Accessibility.HeightClearanceM))
		}
	}
	if len(parts) == 0 {
		return "I don't have height clearance information for those locations.", true
	}
	return "Height clearance: " + strings.Join(parts, ", ") + ".", true
}

func (a *ask) featureList(feature, noun string, pool []models.ParkingLocation, has func(*models.Accessibility) bool) string {
	var parts []string
	for i := range pool {
		loc := &pool[i]
		if loc.Accessibility == nil || !has(loc.Accessibility) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", loc.Name, a.availability(loc)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("I don't know of any %s there.", noun)
	}
	return fmt.Sprintf("%s is available at %s.", feature, strings.Join(parts, ", "))
}

func matchFree(a *ask) bool {
	if hasPhrase(a.text, "free") && !hasAny(a.text, spotWords...) {
		return true
	}
	return hasAny(a.text, freeWords...)
}

func answerFree(a *ask) (string, bool) {
	pool := a.pool()
	var names []string
	for i := range pool {
		if a.freeNow(&pool[i]) {
			names = append(names, pool[i].Name)
		}
	}
	switch {
	case len(names) == 1:
		return fmt.Sprintf("Yes, %s is free right now.", names[0]), true
	case len(names) > 1:
		if len(names) > a.engine.MaxResults {
			names = names[:a.engine.MaxResults]
		}
		return "Yes, these are free right now: " + strings.Join(names, ", ") + ".", true
	}

	for i := range pool {
		if days := services.FreeDays(&pool[i]); len(days) > 0 {
			return fmt.Sprintf("Not right now. %s is free on %s.", pool[i].Name, dayNames(days)), true
		}
	}
	return "Nothing is free right now. Most downtown meters are free on Sundays.", true
}

// freeNow is true for an open location without pricing or whose current
// tier charges nothing
func (a *ask) freeNow(loc *models.ParkingLocation) bool {
	if !services.IsOpen(loc, a.at) {
		return false
	}
	if loc.Pricing == nil {
		return true
	}
	return services.CurrentPrice(loc, a.at).IsFree()
}

func matchPrice(a *ask) bool { return hasAny(a.text, priceWords...) }

func answerPrice(a *ask) (string, bool) {
	if a.subset != nil {
		if len(a.subset) == 1 {
			loc := &a.subset[0]
			return fmt.Sprintf("%s: %s right now.", loc.Name, services.PriceLabel(loc, a.at)), true
		}
		lines := make([]string, 0, len(a.subset))
		for i := range a.capped(a.subset) {
			loc := &a.subset[i]
			lines = append(lines, fmt.Sprintf("- %s: %s", loc.Name, services.PriceLabel(loc, a.at)))
		}
		return strings.Join(lines, "\n"), true
	}

	var (
		cheapest *models.ParkingLocation
		best     *services.Price
	)
	for i := range a.locations {
		loc := &a.locations[i]
		if !services.HasRoom(loc, a.at) {
			continue
		}
		p := services.CurrentPrice(loc, a.at)
		if p == nil || p.Rate == 0 || p.Unit == models.UnitFlat {
			continue
		}
		if best == nil || hourly(p) < hourly(best) {
			cheapest, best = loc, p
		}
	}
	if cheapest == nil {
		return "I couldn't find an open paid spot right now.", true
	}
	return fmt.Sprintf("The cheapest open option right now is %s at %s.", cheapest.Name, best.Label), true
}

func hourly(p *services.Price) float64 {
	if p.Unit == models.UnitHalfHour {
		return p.Rate * 2
	}
	return p.Rate
}

func matchHours(a *ask) bool { return hasAny(a.text, hoursWords...) }

func answerHours(a *ask) (string, bool) {
	if a.subset == nil {
		return "", false
	}
	var lines []string
	for _, loc := range a.capped(a.subset) {
		state := "open now"
		if !services.IsOpen(&loc, a.at) {
			state = "closed right now"
		}
		lines = append(lines, fmt.Sprintf("%s is %s. Hours: %s", loc.Name, state, services.HoursLabel(&loc)))
	}
	return strings.Join(lines, "\n"), true
}

func matchStatus(a *ask) bool { return hasAny(a.text, statusWords...) }

func matchEntity(a *ask) bool { return a.subset != nil }

func answerStatus(a *ask) (string, bool) {
	if a.subset == nil {
		free, open := 0, 0
		for _, view := range services.EvaluateAll(a.locations, a.at) {
			if view.IsOpen {
				open++
				free += view.DisplayedAvailable
			}
		}
		if free == 0 {
			return "Everything is full or closed right now.", true
		}
		return fmt.Sprintf("Right now %s are free across %d open locations downtown.", spots(free), open), true
	}

	var lines []string
	for _, loc := range a.capped(a.subset) {
		view := services.Evaluate(&loc, a.at)
		if !view.IsOpen {
			lines = append(lines, fmt.Sprintf("%s: closed right now (%s).", view.Name, view.HoursLabel))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %d of %d spots free (%s).",
			view.Name, view.DisplayedAvailable, view.TotalSpots, view.StatusLabel))
	}
	return strings.Join(lines, "\n"), true
}

func (a *ask) pool() []models.ParkingLocation {
	if a.subset != nil {
		return a.subset
	}
	return a.locations
}

func (a *ask) capped(locs []models.ParkingLocation) []models.ParkingLocation {
	if len(locs) > a.engine.MaxResults {
		return locs[:a.engine.MaxResults]
	}
	return locs
}

func (a *ask) withRoom(locs []models.ParkingLocation) []models.ParkingLocation {
	var out []models.ParkingLocation
	for i := range locs {
		if services.HasRoom(&locs[i], a.at) {
			out = append(out, locs[i])
		}
	}
	return out
}

func (a *ask) availability(loc *models.ParkingLocation) string {
	if !services.IsOpen(loc, a.at) {
		return "closed now"
	}
	return spots(loc.AvailableSpots) + " free"
}

func spots(n int) string {
	if n == 1 {
		return "1 spot"
	}
	return fmt.Sprintf("%d spots", n)
}

func dayNames(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String() + "s"
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
