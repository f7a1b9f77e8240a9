package particle

import (
	"github.com/gomc-dev/gomc/geom"
)

// LocalCoord is one level of a particle's geometric placement: the cell,
// universe, and lattice the particle occupies at that nesting depth, along
// with its position and direction in that level's frame. Handle value -1
// means unset.
type LocalCoord struct {
	Cell       int
	Universe   int
	Lattice    int
	LatticeIdx [3]int
	Pos        geom.Vec
	Dir        geom.Vec
	Rotated    bool
}

// Reset returns the level to the canonical unset state: all handles
// invalid, zero position and direction, not rotated.
func (c *LocalCoord) Reset() {
	c.Cell = -1
	c.Universe = -1
	c.Lattice = -1
	c.LatticeIdx = [3]int{-1, -1, -1}
	c.Pos = geom.Vec{}
	c.Dir = geom.Vec{}
	c.Rotated = false
}
