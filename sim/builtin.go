package sim

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gomc-dev/gomc"
	"github.com/gomc-dev/gomc/geom"
	"github.com/gomc-dev/gomc/particle"
	"github.com/gomc-dev/gomc/rnd"
	"github.com/gomc-dev/gomc/source"
)

// ENDF reaction identifiers for event classification.
const (
	mtElastic = 2
	mtFission = 18
	mtCapture = 102
)

// Slab is a built-in geometry: one homogeneous cell bounded by two planes
// normal to the x axis at ±HalfWidth, infinite in y and z. Both faces
// apply the same boundary condition. Surfaces are numbered +1 (high x) and
// -1 (low x).
type Slab struct {
	HalfWidth float64
	Boundary  particle.BoundaryKind
	Material  int
}

func (g *Slab) Place(p *particle.Particle) error {
	x := p.Pos()[0]
	if x < -g.HalfWidth || x > g.HalfWidth {
		return fmt.Errorf(
			"position x = %g outside the slab [%g, %g]",
			x, -g.HalfWidth, g.HalfWidth,
		)
	}
	c := &p.Coord[0]
	c.Cell = 0
	c.Universe = 0
	p.NCoord = 1
	p.Material = g.Material
	return nil
}

func (g *Slab) DistanceToBoundary(p *particle.Particle) (float64, int, error) {
	x, u := p.Pos()[0], p.Dir()[0]
	switch {
	case u > 0:
		return (g.HalfWidth - x) / u, +1, nil
	case u < 0:
		return (-g.HalfWidth - x) / u, -1, nil
	}
	return math.Inf(1), 0, nil
}

func (g *Slab) ResolveCrossing(p *particle.Particle, surface int) (particle.Crossing, error) {
	if surface != +1 && surface != -1 {
		return particle.Crossing{}, fmt.Errorf("unknown surface %d", surface)
	}
	cr := particle.Crossing{Kind: g.Boundary}
	if g.Boundary == particle.BoundaryReflective {
		cr.Normal = geom.Vec{float64(surface), 0, 0}
	}
	return cr, nil
}

// OneSpeedPhysics is a built-in physics model for a homogeneous medium:
// exponential flight distances from a constant total cross section,
// isotropic scattering with a fixed mean energy loss, and capture/fission
// split by fixed probabilities. With SurvivalBiasing set, absorption
// removes weight instead of terminating the particle.
type OneSpeedPhysics struct {
	// SigmaTotal is the macroscopic total cross section in 1/cm. When
	// SigmaTable is set it overrides SigmaTotal with an energy lookup.
	SigmaTotal float64
	SigmaTable *XSTable
	// PAbsorb is the absorption probability per collision; PFission the
	// fission fraction of absorption.
	PAbsorb  float64
	PFission float64
	// NuBar is the mean number of fission neutrons per fission.
	NuBar float64
	// EnergyLossFactor multiplies the energy on every scatter.
	EnergyLossFactor float64

	SurvivalBiasing bool
	RunCE           bool
}

func (ph *OneSpeedPhysics) DistanceToCollision(p *particle.Particle, s *rnd.Stream) float64 {
	sigma := ph.SigmaTotal
	if ph.SigmaTable != nil {
		sigma = ph.SigmaTable.Lookup(p.E)
	}
	return -math.Log(1-s.Uniform()) / sigma
}

func (ph *OneSpeedPhysics) Collide(p *particle.Particle, s *rnd.Stream) error {
	p.EventNuclide = 0
	p.Fission = false

	if ph.SurvivalBiasing {
		// Implicit absorption: every collision scatters, and the absorbed
		// fraction of the weight is retired into AbsorbWeight.
		absorbed := p.Weight * ph.PAbsorb
		p.AbsorbWeight += absorbed
		p.Weight -= absorbed
		ph.bankFission(p, s, absorbed)
		ph.scatter(p, s)
		return nil
	}

	if s.Uniform() < ph.PAbsorb {
		p.Alive = false
		p.Event = particle.EventAbsorb
		if s.Uniform() < ph.PFission {
			p.Fission = true
			p.EventMT = mtFission
			ph.bankFission(p, s, p.Weight)
		} else {
			p.EventMT = mtCapture
		}
		return nil
	}

	ph.scatter(p, s)
	return nil
}

func (ph *OneSpeedPhysics) scatter(p *particle.Particle, s *rnd.Stream) {
	oldDir := p.Dir()
	dir := source.IsotropicDirection(s)
	p.Mu = oldDir.Dot(dir)
	for i := 0; i < p.NCoord; i++ {
		p.Coord[i].Dir = dir
	}
	if ph.RunCE && ph.EnergyLossFactor > 0 {
		p.E *= ph.EnergyLossFactor
	}
	p.Event = particle.EventScatter
	p.EventMT = mtElastic
}

// bankFission banks fission sites with expected multiplicity
// nu * weight / survival-weight. The integer part banks directly; the
// fractional part banks with one more Bernoulli draw.
func (ph *OneSpeedPhysics) bankFission(p *particle.Particle, s *rnd.Stream, weight float64) {
	if ph.PFission <= 0 || ph.NuBar <= 0 {
		return
	}
	var expected float64
	if ph.SurvivalBiasing {
		if p.Weight <= 0 {
			return
		}
		expected = ph.NuBar * ph.PFission * weight / p.Weight
	} else {
		expected = ph.NuBar
	}

	n := int(expected)
	if s.Uniform() < expected-float64(n) {
		n++
	}
	for i := 0; i < n; i++ {
		dir := source.IsotropicDirection(s)
		if ph.RunCE {
			p.CreateSecondary(dir, p.E, gomc.Neutron, true)
		} else {
			p.CreateSecondary(dir, float64(p.Group), gomc.Neutron, false)
		}
	}
}

// AtomicTally accumulates scored events with atomic operations so that any
// number of workers can score without blocking each other.
type AtomicTally struct {
	NCollisions  int64
	NAbsorptions int64
	NEscapes     int64

	collisionWeight uint64 // float64 bits
	leakageWeight   uint64 // float64 bits
}

func atomicAddFloat(addr *uint64, x float64) {
	for {
		old := atomic.LoadUint64(addr)
		new := math.Float64bits(math.Float64frombits(old) + x)
		if atomic.CompareAndSwapUint64(addr, old, new) {
			return
		}
	}
}

func (t *AtomicTally) ScoreCollision(p *particle.Particle) {
	atomic.AddInt64(&t.NCollisions, 1)
	atomicAddFloat(&t.collisionWeight, p.LastWeight)
	if p.Event == particle.EventAbsorb {
		atomic.AddInt64(&t.NAbsorptions, 1)
	}
}

func (t *AtomicTally) ScoreSurface(p *particle.Particle) {}

// ScoreEscape records an escaped particle. Called by the run driver, not
// by transport, since escape is only known after the crossing resolves.
func (t *AtomicTally) ScoreEscape(p *particle.Particle) {
	atomic.AddInt64(&t.NEscapes, 1)
	atomicAddFloat(&t.leakageWeight, p.Weight)
}

// CollisionWeight returns the total weight that entered collisions.
func (t *AtomicTally) CollisionWeight() float64 {
	return math.Float64frombits(atomic.LoadUint64(&t.collisionWeight))
}

// LeakageWeight returns the total weight that escaped the geometry.
func (t *AtomicTally) LeakageWeight() float64 {
	return math.Float64frombits(atomic.LoadUint64(&t.leakageWeight))
}
