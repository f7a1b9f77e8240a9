/*package particle implements the transport unit of the simulation: the
particle's phase-space state, its bounded coordinate stack and secondary
bank, and the lifecycle that drives one history from seeding to
termination.

A particle is owned by exactly one worker for its whole history, so nothing
in this package locks. The geometry, physics, and tally collaborators that
transport consults are interfaces supplied through an Environment.
*/
package particle

import (
	"fmt"
	"log"
	"math"

	"github.com/gomc-dev/gomc"
	"github.com/gomc-dev/gomc/geom"
)

// Event classifies the most recent thing that happened to a particle.
type Event int

const (
	EventNone Event = iota
	EventScatter
	EventAbsorb
	EventSurface
	EventEscape
	EventCutoff
	EventLost
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventScatter:
		return "scatter"
	case EventAbsorb:
		return "absorption"
	case EventSurface:
		return "surface"
	case EventEscape:
		return "escape"
	case EventCutoff:
		return "cutoff"
	case EventLost:
		return "lost"
	}
	return "unknown"
}

// Limits holds the per-run numeric bounds transport enforces.
type Limits struct {
	// RunCE selects continuous-energy mode. In multigroup mode the Group
	// field carries the energy representation and E is ignored.
	RunCE                bool
	EnergyMin, EnergyMax float64

	// Weight cutoff for survival biasing: a particle whose weight falls
	// below WeightCutoff plays Russian roulette and either survives with
	// weight WeightSurvive or terminates.
	WeightCutoff, WeightSurvive float64

	// MaxCollisions terminates a history after this many collisions.
	// Zero means unlimited.
	MaxCollisions int
}

// DefaultLimits returns the limits used when a run configures none.
func DefaultLimits() Limits {
	return Limits{
		RunCE:         true,
		EnergyMin:     0,
		EnergyMax:     math.Inf(1),
		WeightCutoff:  0.25,
		WeightSurvive: 1.0,
	}
}

// Particle is the state of one particle being transported through the
// geometry. Fields are exported for the geometry, physics, and tally
// collaborators; nothing outside the owning worker may touch them.
type Particle struct {
	ID   int64
	Kind gomc.Kind

	// Coordinate stack. Coord[0] is always the outermost (global)
	// universe; levels above it nest inside the lattice or cell resolved
	// one level down. NCoord is the number of live levels.
	NCoord int
	Coord  [gomc.MaxCoord]LocalCoord

	// Coordinate snapshot taken just before the most recent surface
	// crossing, for tally attribution.
	LastNCoord int
	LastCell   [gomc.MaxCoord]int

	// Energy, continuous (E) or multigroup (Group).
	E, LastE         float64
	Group, LastGroup int

	Weight, LastWeight float64
	// AbsorbWeight accumulates weight removed by implicit absorption under
	// survival biasing. It never feeds back into termination logic.
	AbsorbWeight float64
	Mu           float64
	Alive        bool

	// LastPosCurrent is the position of the last collision or
	// reflective/periodic crossing; LastPos and LastDir are the phase
	// space at the start of the current flight.
	LastPosCurrent geom.Vec
	LastPos        geom.Vec
	LastDir        geom.Vec

	// Most recent event classification.
	Fission      bool
	Event        Event
	EventNuclide int
	EventMT      int
	DelayedGroup int

	// Handles into collaborator tables.
	Surface      int
	CellBorn     int
	Material     int
	LastMaterial int

	// sqrt(k_B * T) of the current cell, in eV.
	SqrtKT, LastSqrtKT float64

	NCollision int

	WriteTrack bool

	Bank SecondaryBank

	// Restart receives the phase-space snapshot written when the particle
	// is lost. Nil disables restart output.
	Restart RestartWriter

	LostMessage string
	lost        bool
}

// Pos returns the particle's position in the global frame.
func (p *Particle) Pos() geom.Vec { return p.Coord[0].Pos }

// Dir returns the particle's direction in the global frame.
func (p *Particle) Dir() geom.Vec { return p.Coord[0].Dir }

// Innermost returns the deepest live coordinate level.
func (p *Particle) Innermost() *LocalCoord { return &p.Coord[p.NCoord-1] }

// PushCoord makes the next coordinate level live and returns it, reset.
// Running out of levels means the modeled geometry nests deeper than the
// configured maximum, which no run can recover from.
func (p *Particle) PushCoord() *LocalCoord {
	if p.NCoord >= gomc.MaxCoord {
		panic(fmt.Sprintf(
			"geometry nests deeper than the %d supported coordinate levels",
			gomc.MaxCoord,
		))
	}
	c := &p.Coord[p.NCoord]
	c.Reset()
	p.NCoord++
	return c
}

// Initialize resets every field to a safe default: the coordinate stack
// collapsed to a single unset level, zero energy and weight, not alive,
// empty bank. It is idempotent and is also the first step of FromSource.
func (p *Particle) Initialize() {
	for i := range p.Coord {
		p.Coord[i].Reset()
	}
	p.NCoord = 1
	p.LastNCoord = 1
	for i := range p.LastCell {
		p.LastCell[i] = -1
	}

	p.E, p.LastE = 0, 0
	p.Group, p.LastGroup = 0, 0
	p.Weight, p.LastWeight = 0, 0
	p.AbsorbWeight = 0
	p.Mu = 0
	p.Alive = false

	p.LastPosCurrent = geom.Vec{}
	p.LastPos = geom.Vec{}
	p.LastDir = geom.Vec{}

	p.Fission = false
	p.Event = EventNone
	p.EventNuclide = -1
	p.EventMT = 0
	p.DelayedGroup = 0

	p.Surface = -1
	p.CellBorn = -1
	p.Material = -1
	p.LastMaterial = -1
	p.SqrtKT, p.LastSqrtKT = 0, 0

	p.NCollision = 0
	p.WriteTrack = false

	p.Bank.Reset()
	p.LostMessage = ""
	p.lost = false
}

// FromSource seeds the particle from a source site: the site's phase space
// is loaded into coordinate level 0 and the scalar fields, everything above
// level 0 is cleared, the bank and per-history counters reset, and the
// particle comes alive. Site fields outside their physical ranges are a
// configuration or data error and are returned to the caller rather than
// clamped.
func (p *Particle) FromSource(src *gomc.Site, lim *Limits) error {
	if src.Weight <= 0 {
		return fmt.Errorf(
			"source site has non-positive weight %g", src.Weight,
		)
	}
	if lim.RunCE && (src.E < lim.EnergyMin || src.E > lim.EnergyMax) {
		return fmt.Errorf(
			"source site energy %g eV outside configured bounds [%g, %g]",
			src.E, lim.EnergyMin, lim.EnergyMax,
		)
	}

	p.Initialize()

	p.Kind = src.Kind
	p.Coord[0].Pos = src.Pos
	p.Coord[0].Dir = src.Dir
	p.Coord[0].Universe = 0
	p.E, p.LastE = src.E, src.E
	p.Group, p.LastGroup = src.Group, src.Group
	p.Weight, p.LastWeight = src.Weight, src.Weight
	p.DelayedGroup = src.DelayedGroup

	p.LastPos = src.Pos
	p.LastDir = src.Dir
	p.LastPosCurrent = src.Pos

	p.Alive = true
	return nil
}

// CreateSecondary banks a new source site at the particle's current
// position and weight, with the given direction, energy, and species. In
// multigroup mode e is the group index. A full bank is fatal: it implies a
// runaway multiplication the configured capacity did not anticipate, and
// silently dropping sites would bias the run.
func (p *Particle) CreateSecondary(dir geom.Vec, e float64, kind gomc.Kind, runCE bool) {
	site := gomc.Site{
		Pos:          p.Pos(),
		Dir:          dir,
		Weight:       p.Weight,
		Kind:         kind,
		DelayedGroup: p.DelayedGroup,
	}
	if runCE {
		site.E = e
	} else {
		site.Group = int(e)
	}
	p.Bank.append(&site)
}

// Lost reports whether the particle was marked as lost this history.
func (p *Particle) Lost() bool { return p.lost }

// MarkAsLost terminates the history, records the message, and writes a
// restart snapshot. Repeat calls keep the particle dead but do not write a
// second snapshot or change the recorded message, so external lost-particle
// accounting sees one event per particle.
func (p *Particle) MarkAsLost(msg string) {
	p.Alive = false
	if p.lost {
		return
	}
	p.lost = true
	p.LostMessage = msg
	p.Event = EventLost

	log.Printf("particle %d lost: %s", p.ID, msg)
	if err := p.WriteRestart(); err != nil {
		log.Printf("particle %d: restart snapshot failed: %v", p.ID, err)
	}
}
