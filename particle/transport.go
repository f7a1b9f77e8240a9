package particle

import (
	"fmt"

	"github.com/gomc-dev/gomc/geom"
	"github.com/gomc-dev/gomc/rnd"
)

// BoundaryKind is the boundary condition a surface applies to particles
// that reach it.
type BoundaryKind int

const (
	// BoundaryTransmit continues the particle into the far-side cell.
	BoundaryTransmit BoundaryKind = iota
	// BoundaryVacuum terminates the particle as escaped.
	BoundaryVacuum
	// BoundaryReflective reflects the direction about the surface normal.
	BoundaryReflective
	// BoundaryPeriodic translates the particle to the paired surface.
	BoundaryPeriodic
)

// Crossing describes the far side of a surface. Normal is the unit surface
// normal and is only meaningful for reflective boundaries; Translation only
// for periodic ones.
type Crossing struct {
	Kind        BoundaryKind
	Normal      geom.Vec
	Translation geom.Vec
}

// Geometry is the solid-model collaborator. It owns cell, surface, and
// lattice resolution and is the only thing allowed to push and rewrite
// coordinate levels.
type Geometry interface {
	// Place resolves the coordinate levels for a freshly seeded particle.
	Place(p *Particle) error

	// DistanceToBoundary returns the distance from the particle's current
	// position to the nearest bounding surface along its direction and a
	// handle for that surface.
	DistanceToBoundary(p *Particle) (dist float64, surface int, err error)

	// ResolveCrossing handles a particle sitting on the given surface.
	// For a transmitting boundary it rebuilds the coordinate levels on the
	// far side; for vacuum, reflective, and periodic boundaries it leaves
	// the stack alone and reports the condition for the particle to apply.
	ResolveCrossing(p *Particle, surface int) (Crossing, error)
}

// Physics is the nuclear-data collaborator: it samples flight distances
// and resolves collision outcomes in place, including banking secondaries.
type Physics interface {
	DistanceToCollision(p *Particle, s *rnd.Stream) float64
	Collide(p *Particle, s *rnd.Stream) error
}

// Tally receives scored events. Implementations must accept calls from
// many workers at once without blocking particle progress.
type Tally interface {
	ScoreCollision(p *Particle)
	ScoreSurface(p *Particle)
}

// Environment bundles the collaborators one worker threads through
// transport. Tally may be nil.
type Environment struct {
	Geometry Geometry
	Physics  Physics
	Tally    Tally
	Stream   *rnd.Stream
	Limits   Limits
}

// Transport drives the particle from its current state to termination:
// repeatedly sample the distances to the next collision and the next
// boundary, advance over the shorter one, and resolve the event. The
// history ends when the particle is absorbed, escapes, fails the weight
// cutoff, hits the collision limit, or is lost. Termination is absorbing;
// once Alive is false nothing here mutates the particle again.
func (p *Particle) Transport(env *Environment) {
	for p.Alive {
		if env.Limits.MaxCollisions > 0 &&
			p.NCollision >= env.Limits.MaxCollisions {
			p.Alive = false
			p.Event = EventCutoff
			return
		}

		p.LastPos = p.Pos()
		p.LastDir = p.Dir()

		dColl := env.Physics.DistanceToCollision(p, env.Stream)
		dBound, surface, err := env.Geometry.DistanceToBoundary(p)
		if err != nil {
			p.MarkAsLost(fmt.Sprintf(
				"no boundary found from (%g, %g, %g): %v",
				p.Pos()[0], p.Pos()[1], p.Pos()[2], err,
			))
			return
		}

		if dBound < dColl {
			p.advance(dBound)
			p.Surface = surface
			p.Event = EventSurface
			p.CrossSurface(env)
		} else {
			p.advance(dColl)
			p.collide(env)
		}
	}
}

// advance moves the particle the given distance along its direction at
// every live coordinate level.
func (p *Particle) advance(d float64) {
	for i := 0; i < p.NCoord; i++ {
		c := &p.Coord[i]
		c.Pos = c.Pos.Add(c.Dir.Scale(d))
	}
}

func (p *Particle) collide(env *Environment) {
	p.LastE = p.E
	p.LastGroup = p.Group
	p.LastWeight = p.Weight
	p.LastMaterial = p.Material
	p.LastSqrtKT = p.SqrtKT

	if err := env.Physics.Collide(p, env.Stream); err != nil {
		p.MarkAsLost(fmt.Sprintf("collision could not be resolved: %v", err))
		return
	}

	p.NCollision++
	p.LastPosCurrent = p.Pos()
	if env.Tally != nil {
		env.Tally.ScoreCollision(p)
	}
	if p.Alive {
		p.russianRoulette(env)
	}
}

// russianRoulette applies the weight cutoff: a particle below the cutoff
// either survives with the configured survival weight or terminates, so
// the expected weight is conserved.
func (p *Particle) russianRoulette(env *Environment) {
	lim := &env.Limits
	if lim.WeightCutoff <= 0 || p.Weight >= lim.WeightCutoff {
		return
	}
	if env.Stream.Uniform() < p.Weight/lim.WeightSurvive {
		p.Weight = lim.WeightSurvive
	} else {
		p.Weight = 0
		p.Alive = false
		p.Event = EventCutoff
	}
}

// CrossSurface handles the particle sitting on p.Surface: it snapshots the
// coordinate stack for tally attribution, asks the geometry for the far
// side, and applies the boundary condition. The snapshot reflects state
// strictly before the geometry update; the live stack strictly after.
func (p *Particle) CrossSurface(env *Environment) {
	p.LastNCoord = p.NCoord
	for i := 0; i < p.NCoord; i++ {
		p.LastCell[i] = p.Coord[i].Cell
	}
	if env.Tally != nil {
		env.Tally.ScoreSurface(p)
	}

	cr, err := env.Geometry.ResolveCrossing(p, p.Surface)
	if err != nil {
		p.MarkAsLost(fmt.Sprintf(
			"could not be located after crossing surface %d: %v",
			p.Surface, err,
		))
		return
	}

	switch cr.Kind {
	case BoundaryTransmit:
		// Geometry rebuilt the stack; nothing more to do.
	case BoundaryVacuum:
		p.Alive = false
		p.Event = EventEscape
	case BoundaryReflective:
		dir := p.Dir().Reflect(cr.Normal).Normalize()
		for i := 0; i < p.NCoord; i++ {
			p.Coord[i].Dir = dir
		}
		p.LastPosCurrent = p.Pos()
	case BoundaryPeriodic:
		for i := 0; i < p.NCoord; i++ {
			p.Coord[i].Pos = p.Coord[i].Pos.Add(cr.Translation)
		}
		p.LastPosCurrent = p.Pos()
	}
}
