package models

// Unit is the billing unit of a price tier
type Unit string

const (
	UnitHour     Unit = "hour"
	UnitHalfHour Unit = "halfHour"
	UnitFlat     Unit = "flat"
)

// Pricing is either permit only or an ordered list of tiers. Tier order is
// significant: the first tier matching an instant wins.
type Pricing struct {
	PermitOnly bool        `json:"permitOnly,omitempty" yaml:"permitOnly"`
	Tiers      []PriceTier `json:"tiers,omitempty" yaml:"tiers"`
}

// PriceTier is a rate scoped to days of the week and a time of day.
// Empty Days means every day, empty Start/End mean the whole day.
type PriceTier struct {
	Days     []int    `json:"daysOfWeek,omitempty" yaml:"daysOfWeek"`
	Start    string   `json:"start,omitempty" yaml:"start"`
	End      string   `json:"end,omitempty" yaml:"end"`
	Rate     float64  `json:"rate" yaml:"rate"`
	Unit     Unit     `json:"unit" yaml:"unit"`
	DailyMax *float64 `json:"dailyMax,omitempty" yaml:"dailyMax"`
}

func (p *Pricing) clone() *Pricing {
	c := &Pricing{PermitOnly: p.PermitOnly}
	if p.Tiers != nil {
		c.Tiers = make([]PriceTier, len(p.Tiers))
		for i, t := range p.Tiers {
			t.Days = append([]int(nil), t.Days...)
			if t.DailyMax != nil {
				m := *t.DailyMax
				t.DailyMax = &m
			}
			c.Tiers[i] = t
		}
	}
	return c
}
