// internal/app/noise/noise.go

// Package noise simulates model uncertainty by scaling true values with a
// random factor. It is cosmetic: the "prediction" is always derived from the
// value it pretends to predict.
package noise

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/dalemusser/matpredict/internal/domain/models"
)

// The scale factor is drawn uniformly from [MinFactor, MaxFactor).
const (
	MinFactor = 0.85
	MaxFactor = 0.90
)

// Injector perturbs values. It is safe for concurrent use.
type Injector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an Injector drawing from src. A nil src seeds from the clock.
func New(src rand.Source) *Injector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Injector{rng: rand.New(src)}
}

// NewSeeded returns an Injector with a fixed seed; seed 0 seeds from the clock.
func NewSeeded(seed int64) *Injector {
	if seed == 0 {
		return New(nil)
	}
	return New(rand.NewSource(seed))
}

// Perturb multiplies v by a factor in [MinFactor, MaxFactor) and rounds the
// result to two decimal places.
func (n *Injector) Perturb(v float64) float64 {
	n.mu.Lock()
	f := MinFactor + n.rng.Float64()*(MaxFactor-MinFactor)
	n.mu.Unlock()
	return Round2(v * f)
}

// PerturbRecord returns a copy of r with its three numeric properties
// perturbed independently. IsMetal and the identifying fields are unchanged.
func (n *Injector) PerturbRecord(r models.MaterialRecord) models.MaterialRecord {
	out := r
	out.EnergyAboveHull = n.Perturb(r.EnergyAboveHull)
	out.BandGap = n.Perturb(r.BandGap)
	out.TotalMagnetization = n.Perturb(r.TotalMagnetization)
	return out
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
