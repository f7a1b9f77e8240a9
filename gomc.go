/*package gomc holds the types shared between the transport core and its
collaborators: the particle species enumeration, the source site record that
seeds particle histories, and the fixed structural limits of a run.

A source site is a flat phase-space snapshot. It is produced by a spatial
distribution, by fission, or by an external source file, and is consumed
exactly once when a particle history is seeded from it.
*/
package gomc

import (
	"github.com/gomc-dev/gomc/geom"
)

const (
	// MaxDelayedGroups bounds the per-delayed-group bookkeeping arrays.
	// Evaluated nuclear data libraries disagree on the number of delayed
	// groups (ENDF/B-VII.1 has 6, JEFF 3.1.1 has 8), so the arrays are
	// sized for the largest library in common use.
	MaxDelayedGroups = 8

	// MaxSecondary is the capacity of a particle's secondary bank. A
	// history that banks more sites than this is treated as a runaway
	// multiplication and aborts the run.
	MaxSecondary = 1000

	// MaxCoord is the deepest geometric nesting a coordinate stack can
	// represent: global universe, then alternating cell/lattice levels.
	MaxCoord = 6

	// MaxLostParticles and RelMaxLostParticles are the default tolerances
	// for lost particles across a whole run, absolute and relative to the
	// number of histories simulated.
	MaxLostParticles    = 10
	RelMaxLostParticles = 1.0e-6
)

// Kind identifies a particle species.
type Kind int

const (
	Neutron Kind = iota
	Photon
	Electron
	Positron
)

func (k Kind) String() string {
	switch k {
	case Neutron:
		return "neutron"
	case Photon:
		return "photon"
	case Electron:
		return "electron"
	case Positron:
		return "positron"
	}
	return "unknown"
}

// Site is a source site: the phase-space record a particle history is
// seeded from. E and Group are alternative energy representations; the run
// mode selects which one is meaningful.
type Site struct {
	Pos          geom.Vec
	Dir          geom.Vec
	E            float64
	Group        int
	Weight       float64
	Kind         Kind
	DelayedGroup int
}
