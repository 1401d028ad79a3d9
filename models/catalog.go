package models

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog is the in-memory set of parking locations. It is seeded once and
// afterwards only availability changes; entries are never added or removed.
type Catalog struct {
	entries []*ParkingLocation
	index   map[string]*ParkingLocation
	mutex   *sync.RWMutex
}

// NewCatalog validates the seed and builds a catalog preserving seed order
func NewCatalog(locations []ParkingLocation) (*Catalog, error) {
	c := &Catalog{
		entries: make([]*ParkingLocation, 0, len(locations)),
		index:   make(map[string]*ParkingLocation, len(locations)),
		mutex:   &sync.RWMutex{},
	}
	for i := range locations {
		loc := locations[i].Clone()
		if loc.ID == "" {
			return nil, fmt.Errorf("location %d (%q): %w", i, loc.Name, ErrMissingID)
		}
		if _, exists := c.index[loc.ID]; exists {
			return nil, fmt.Errorf("location %q: %w", loc.ID, ErrDuplicateID)
		}
		if loc.TotalSpots <= 0 {
			return nil, fmt.Errorf("location %q: %w", loc.ID, ErrInvalidCapacity)
		}
		if loc.Kind != KindStreet && loc.Kind != KindLot {
			return nil, fmt.Errorf("location %q kind %q: %w", loc.ID, loc.Kind, ErrUnknownKind)
		}
		for j, w := range loc.OperatingHours {
			if len(w.Days) == 0 {
				return nil, fmt.Errorf("location %q window %d: %w", loc.ID, j, ErrWindowDays)
			}
		}
		loc.AvailableSpots = clamp(loc.AvailableSpots, 0, loc.TotalSpots)
		c.entries = append(c.entries, &loc)
		c.index[loc.ID] = &loc
	}
	return c, nil
}

// Snapshot returns deep copies of every location in catalog order
func (c *Catalog) Snapshot() []ParkingLocation {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]ParkingLocation, len(c.entries))
	for i, loc := range c.entries {
		out[i] = loc.Clone()
	}
	return out
}

// Get returns a copy of the location with the given id
func (c *Catalog) Get(id string) (ParkingLocation, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	loc, ok := c.index[id]
	if !ok {
		return ParkingLocation{}, false
	}
	return loc.Clone(), true
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// ApplySensorUpdate stores an observed free-spot count for a location,
// clamped to its capacity. Unknown ids are ignored and reported as false.
// Applying the same observation again leaves the state unchanged.
func (c *Catalog) ApplySensorUpdate(id string, observed int) bool {
	return c.SetAvailable(id, observed)
}

// ApplySensorBatch applies each observation independently and returns the
// ids that were applied and the ids that were ignored, both sorted
func (c *Catalog) ApplySensorBatch(observations map[string]int) (applied, ignored []string) {
	ids := make([]string, 0, len(observations))
	for id := range observations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if c.ApplySensorUpdate(id, observations[id]) {
			applied = append(applied, id)
		} else {
			ignored = append(ignored, id)
		}
	}
	return applied, ignored
}

// SetAvailable is the single write path for availability
func (c *Catalog) SetAvailable(id string, available int) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	loc, ok := c.index[id]
	if !ok {
		return false
	}
	loc.AvailableSpots = clamp(available, 0, loc.TotalSpots)
	return true
}

// Adjust moves the free-spot count of a location by delta under the write
// lock, clamped to capacity. It reports whether the stored count changed.
func (c *Catalog) Adjust(id string, delta int) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	loc, ok := c.index[id]
	if !ok {
		return false
	}
	before := loc.AvailableSpots
	loc.AvailableSpots = clamp(before+delta, 0, loc.TotalSpots)
	return loc.AvailableSpots != before
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
