package services

import (
	"math/rand"

	"github.com/SangBejoo/kingston-parking/models"
)

// Drift is the random walk applied to locations without live sensors
type Drift struct {
	catalog *models.Catalog
	rng     *rand.Rand
	maxStep int
}

func NewDrift(catalog *models.Catalog, seed int64) *Drift {
	return &Drift{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
		maxStep: 2,
	}
}

// Step moves every simulated location by up to maxStep spots in either
// direction, relative to its count at the moment of the write, and returns
// how many locations changed
func (d *Drift) Step() int {
	changed := 0
	for _, loc := range d.catalog.Snapshot() {
		if loc.SensorBacked {
			continue
		}
		delta := d.rng.Intn(2*d.maxStep+1) - d.maxStep
		if delta == 0 {
			continue
		}
		if d.catalog.Adjust(loc.ID, delta) {
			changed++
		}
	}
	return changed
}
