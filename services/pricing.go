package services

import (
	"fmt"
	"time"

	"github.com/SangBejoo/kingston-parking/models"
)

// Price is the tier in effect at a given instant
type Price struct {
	Rate     float64     `json:"rate"`
	Unit     models.Unit `json:"unit"`
	DailyMax *float64    `json:"dailyMax,omitempty"`
	Label    string      `json:"label"`
}

func (p *Price) IsFree() bool {
	return p != nil && p.Rate == 0
}

// CurrentPrice returns the first tier matching t, in list order. It returns
// nil when the location has no pricing (free), is permit only, or no tier
// covers t.
func CurrentPrice(loc *models.ParkingLocation, t time.Time) *Price {
	if loc.Pricing == nil || loc.Pricing.PermitOnly {
		return nil
	}
	minute := minuteOfDay(t)
	for _, tier := range loc.Pricing.Tiers {
		if !matchesDay(tier.Days, t.Weekday(), true) {
			continue
		}
		start, end, ok := tierBounds(tier)
		if !ok || !inWindow(minute, start, end) {
			continue
		}
		return &Price{
			Rate:     tier.Rate,
			Unit:     tier.Unit,
			DailyMax: tier.DailyMax,
			Label:    priceLabel(tier),
		}
	}
	return nil
}

func tierBounds(tier models.PriceTier) (int, int, bool) {
	startStr, endStr := tier.Start, tier.End
	if startStr == "" {
		startStr = "00:00"
	}
	if endStr == "" {
		endStr = "24:00"
	}
	start, ok1 := parseClock(startStr)
	end, ok2 := parseClock(endStr)
	return start, end, ok1 && ok2
}

func priceLabel(tier models.PriceTier) string {
	if tier.Rate == 0 {
		return "Free"
	}
	label := fmt.Sprintf("$%.2f%s", tier.Rate, unitSuffix(tier.Unit))
	if tier.DailyMax != nil {
		label += fmt.Sprintf(" (max $%.2f/day)", *tier.DailyMax)
	}
	return label
}

func unitSuffix(u models.Unit) string {
	switch u {
	case models.UnitHalfHour:
		return "/30 min"
	case models.UnitFlat:
		return " flat"
	default:
		return "/hr"
	}
}

// PriceLabel is the price text shown on cards and markers
func PriceLabel(loc *models.ParkingLocation, t time.Time) string {
	switch {
	case loc.Pricing == nil:
		return "Free"
	case loc.Pricing.PermitOnly:
		return "Permit only"
	}
	if p := CurrentPrice(loc, t); p != nil {
		return p.Label
	}
	return "Free (outside paid hours)"
}

// FreeDays lists the days on which some tier of the location charges nothing
func FreeDays(loc *models.ParkingLocation) []time.Weekday {
	if loc.Pricing == nil || loc.Pricing.PermitOnly {
		return nil
	}
	var seen [7]bool
	for _, tier := range loc.Pricing.Tiers {
		if tier.Rate != 0 {
			continue
		}
		if len(tier.Days) == 0 {
			for d := range seen {
				seen[d] = true
			}
			continue
		}
		for _, d := range tier.Days {
			if d >= 0 && d < 7 {
				seen[d] = true
			}
		}
	}
	var days []time.Weekday
	for d, free := range seen {
		if free {
			days = append(days, time.Weekday(d))
		}
	}
	return days
}
