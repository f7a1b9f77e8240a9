package particle

import (
	"github.com/gomc-dev/gomc"
	"github.com/gomc-dev/gomc/geom"
)

// SnapshotLevel is one coordinate level of a restart snapshot.
type SnapshotLevel struct {
	Cell       int      `json:"cell"`
	Universe   int      `json:"universe"`
	Lattice    int      `json:"lattice"`
	LatticeIdx [3]int   `json:"lattice_idx"`
	Pos        geom.Vec `json:"pos"`
	Dir        geom.Vec `json:"dir"`
	Rotated    bool     `json:"rotated"`
}

// Snapshot is a complete phase-space dump of a particle: everything needed
// to rebuild it through FromSource, plus the event history fields that make
// the dump useful for debugging the history that produced it.
type Snapshot struct {
	ID      int64     `json:"id"`
	Kind    gomc.Kind `json:"kind"`
	Message string    `json:"message,omitempty"`

	Levels []SnapshotLevel `json:"levels"`

	E            float64 `json:"energy"`
	Group        int     `json:"group"`
	Weight       float64 `json:"weight"`
	AbsorbWeight float64 `json:"absorb_weight"`
	DelayedGroup int     `json:"delayed_group"`

	Event        Event `json:"event"`
	EventNuclide int   `json:"event_nuclide"`
	EventMT      int   `json:"event_mt"`
	NCollision   int   `json:"n_collision"`

	Surface  int `json:"surface"`
	CellBorn int `json:"cell_born"`
	Material int `json:"material"`
}

// RestartWriter persists restart snapshots. The encoding and destination
// are the writer's concern; the particle's contract is only that the
// snapshot it hands over is complete.
type RestartWriter interface {
	WriteRestart(snap *Snapshot) error
}

// Snapshot captures the particle's full current phase space.
func (p *Particle) Snapshot() *Snapshot {
	snap := &Snapshot{
		ID:      p.ID,
		Kind:    p.Kind,
		Message: p.LostMessage,

		Levels: make([]SnapshotLevel, p.NCoord),

		E:            p.E,
		Group:        p.Group,
		Weight:       p.Weight,
		AbsorbWeight: p.AbsorbWeight,
		DelayedGroup: p.DelayedGroup,

		Event:        p.Event,
		EventNuclide: p.EventNuclide,
		EventMT:      p.EventMT,
		NCollision:   p.NCollision,

		Surface:  p.Surface,
		CellBorn: p.CellBorn,
		Material: p.Material,
	}
	for i := 0; i < p.NCoord; i++ {
		c := &p.Coord[i]
		snap.Levels[i] = SnapshotLevel{
			Cell:       c.Cell,
			Universe:   c.Universe,
			Lattice:    c.Lattice,
			LatticeIdx: c.LatticeIdx,
			Pos:        c.Pos,
			Dir:        c.Dir,
			Rotated:    c.Rotated,
		}
	}
	return snap
}

// Site converts the snapshot back into a source site that reproduces the
// particle's phase space when fed to FromSource.
func (snap *Snapshot) Site() gomc.Site {
	site := gomc.Site{
		E:            snap.E,
		Group:        snap.Group,
		Weight:       snap.Weight,
		Kind:         snap.Kind,
		DelayedGroup: snap.DelayedGroup,
	}
	if len(snap.Levels) > 0 {
		site.Pos = snap.Levels[0].Pos
		site.Dir = snap.Levels[0].Dir
	}
	return site
}

// WriteRestart hands the current snapshot to the configured restart
// writer. A particle with no writer configured skips the write.
func (p *Particle) WriteRestart() error {
	if p.Restart == nil {
		return nil
	}
	return p.Restart.WriteRestart(p.Snapshot())
}
