package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gomc-dev/gomc"
	"github.com/gomc-dev/gomc/geom"
	"github.com/gomc-dev/gomc/particle"
	"github.com/gomc-dev/gomc/rnd"
	"github.com/gomc-dev/gomc/source"
)

func testRunner() *Runner {
	return &Runner{
		Histories:    200,
		Batches:      2,
		Workers:      4,
		Seed:         1,
		Space:        &source.FixedPoint{R: geom.Vec{0, 0, 0}},
		SourceEnergy: 1e6,
		Kind:         gomc.Neutron,
		Geometry:     &Slab{HalfWidth: 10, Boundary: particle.BoundaryVacuum},
		Physics: &OneSpeedPhysics{
			SigmaTotal:       0.5,
			PAbsorb:          0.5,
			PFission:         0,
			NuBar:            0,
			EnergyLossFactor: 0.5,
			RunCE:            true,
		},
		Tally:      &AtomicTally{},
		Limits:     particle.DefaultLimits(),
		MaxLost:    10,
		RelMaxLost: 1e-6,
	}
}

func TestRunAccountsForEveryHistory(t *testing.T) {
	r := testRunner()
	res, err := r.Run()
	assert.NoError(t, err)
	assert.Equal(t, int64(400), res.Histories)
	assert.Equal(t, int64(0), res.Lost)

	// Every history ends absorbed, escaped, or rouletted, so the event
	// counts bound the history count.
	total := r.Tally.NAbsorptions + r.Tally.NEscapes
	if total > res.Histories {
		t.Errorf(
			"%d absorptions + escapes out of %d histories",
			total, res.Histories,
		)
	}
	if r.Tally.NCollisions == 0 {
		t.Error("no collisions scored in an absorbing slab")
	}
}

func TestRunReproducibleAcrossWorkerCounts(t *testing.T) {
	r1 := testRunner()
	r1.Workers = 1
	res1, err := r1.Run()
	assert.NoError(t, err)

	r2 := testRunner()
	r2.Workers = 8
	res2, err := r2.Run()
	assert.NoError(t, err)

	// Per-history substreams make the physics independent of the worker
	// split: every counting statistic matches exactly.
	assert.Equal(t, res1.Lost, res2.Lost)
	assert.Equal(t, r1.Tally.NCollisions, r2.Tally.NCollisions)
	assert.Equal(t, r1.Tally.NAbsorptions, r2.Tally.NAbsorptions)
	assert.Equal(t, r1.Tally.NEscapes, r2.Tally.NEscapes)
	assert.Equal(t, len(res1.FissionSites), len(res2.FissionSites))
}

func TestFissionSitesDrainedIntoBank(t *testing.T) {
	r := testRunner()
	r.Batches = 1
	r.Physics = &OneSpeedPhysics{
		SigmaTotal: 10, // collide before reaching the boundary
		PAbsorb:    1,
		PFission:   1,
		NuBar:      2,
		RunCE:      true,
	}

	res, err := r.Run()
	assert.NoError(t, err)

	// Analog mode with nu = 2 banks exactly two sites per absorption.
	assert.Equal(t, 2*r.Tally.NAbsorptions, int64(len(res.FissionSites)))
	assert.InDelta(t, float64(len(res.FissionSites)), res.FissionWeight, 1e-9)
	for i := range res.FissionSites {
		site := &res.FissionSites[i]
		assert.Equal(t, gomc.Neutron, site.Kind)
		assert.Equal(t, 1e6, site.E)
		if x := site.Pos[0]; x < -10 || x > 10 {
			t.Fatalf("fission site %d at x = %g outside the slab", i, x)
		}
	}
}

func TestExternalSitesSeedRoundRobin(t *testing.T) {
	r := testRunner()
	r.Space = nil
	r.Sites = []gomc.Site{
		{Pos: geom.Vec{1, 0, 0}, Dir: geom.Vec{1, 0, 0}, E: 1e6, Weight: 1},
		{Pos: geom.Vec{-1, 0, 0}, Dir: geom.Vec{-1, 0, 0}, E: 2e6, Weight: 1},
	}

	res, err := r.Run()
	assert.NoError(t, err)
	assert.Equal(t, int64(400), res.Histories)
}

func TestLostThresholdAbortsAtBatchBoundary(t *testing.T) {
	r := testRunner()
	r.Histories = 20
	r.MaxLost = 5
	// A point source outside the slab: placement fails and every history
	// is lost.
	r.Space = &source.FixedPoint{R: geom.Vec{100, 0, 0}}

	_, err := r.Run()
	assert.Error(t, err)
}

func TestInvalidSourceSiteAbortsRun(t *testing.T) {
	r := testRunner()
	r.Sites = []gomc.Site{
		{Pos: geom.Vec{0, 0, 0}, Dir: geom.Vec{1, 0, 0}, E: 1e6, Weight: 0},
	}
	_, err := r.Run()
	assert.Error(t, err)
}

func TestSlabDistanceToBoundary(t *testing.T) {
	g := &Slab{HalfWidth: 10, Boundary: particle.BoundaryVacuum}
	lim := particle.DefaultLimits()

	table := []struct {
		x, u    float64
		dist    float64
		surface int
	}{
		{0, 1, 10, +1},
		{0, -1, 10, -1},
		{5, 1, 5, +1},
		{-5, -0.5, 10, -1},
	}

	for i, line := range table {
		site := gomc.Site{
			Pos: geom.Vec{line.x, 0, 0}, Dir: geom.Vec{line.u, 0, 0},
			E: 1e6, Weight: 1,
		}
		p := &particle.Particle{}
		if err := p.FromSource(&site, &lim); err != nil {
			t.Fatal(err)
		}
		if err := g.Place(p); err != nil {
			t.Fatal(err)
		}

		d, surface, err := g.DistanceToBoundary(p)
		if err != nil {
			t.Errorf("%d) unexpected error: %v", i, err)
		}
		if d != line.dist || surface != line.surface {
			t.Errorf(
				"%d) got distance %g to surface %d, want %g to %d",
				i, d, surface, line.dist, line.surface,
			)
		}
	}
}

func TestSlabReflectiveRunConservesWeight(t *testing.T) {
	r := testRunner()
	r.Batches = 1
	r.Geometry = &Slab{HalfWidth: 10, Boundary: particle.BoundaryReflective}
	r.Physics = &OneSpeedPhysics{
		SigmaTotal: 0.5,
		PAbsorb:    1, // every collision absorbs; nothing can escape
		RunCE:      true,
	}

	res, err := r.Run()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), r.Tally.NEscapes)
	assert.Equal(t, res.Histories, r.Tally.NAbsorptions)
}

func TestSurvivalBiasingRetiresWeight(t *testing.T) {
	ph := &OneSpeedPhysics{
		SigmaTotal:      1,
		PAbsorb:         0.5,
		SurvivalBiasing: true,
		RunCE:           true,
	}
	lim := particle.DefaultLimits()
	lim.WeightCutoff = 0 // keep the particle alive through the check

	site := gomc.Site{
		Pos: geom.Vec{0, 0, 0}, Dir: geom.Vec{0, 0, 1}, E: 1e6, Weight: 1,
	}
	p := &particle.Particle{}
	assert.NoError(t, p.FromSource(&site, &lim))

	s := rnd.New(99)
	assert.NoError(t, ph.Collide(p, s))
	assert.True(t, p.Alive)
	assert.Equal(t, particle.EventScatter, p.Event)
	assert.InDelta(t, 0.5, p.Weight, 1e-12)
	assert.InDelta(t, 0.5, p.AbsorbWeight, 1e-12)
}

func TestAtomicTallyFloatAccumulation(t *testing.T) {
	tally := &AtomicTally{}
	for i := 0; i < 1000; i++ {
		atomicAddFloat(&tally.leakageWeight, 0.5)
	}
	assert.InDelta(t, 500.0, tally.LeakageWeight(), 1e-9)
}

func TestOneSpeedPhysicsEventClassification(t *testing.T) {
	ph := &OneSpeedPhysics{
		SigmaTotal: 1,
		PAbsorb:    1,
		PFission:   1,
		NuBar:      2,
		RunCE:      true,
	}
	lim := particle.DefaultLimits()
	site := gomc.Site{
		Pos: geom.Vec{0, 0, 0}, Dir: geom.Vec{0, 0, 1}, E: 1e6, Weight: 1,
	}
	p := &particle.Particle{}
	assert.NoError(t, p.FromSource(&site, &lim))

	assert.NoError(t, ph.Collide(p, rnd.New(99)))
	assert.False(t, p.Alive)
	assert.Equal(t, particle.EventAbsorb, p.Event)
	assert.True(t, p.Fission)
	assert.Equal(t, mtFission, p.EventMT)
	assert.Equal(t, 2, p.Bank.Len())
}
