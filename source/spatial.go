package source

import (
	"math"

	"github.com/gomc-dev/gomc/geom"
	"github.com/gomc-dev/gomc/rnd"
)

// Spatial samples a 3-D position. Every variant owns its child samplers
// outright: the tree built at configuration time is never shared and never
// mutated after construction.
type Spatial interface {
	Sample(s *rnd.Stream) geom.Vec
}

// CartesianIndependent samples x, y, and z from three independent 1-D
// distributions.
type CartesianIndependent struct {
	X, Y, Z Distribution
}

func (c *CartesianIndependent) Sample(s *rnd.Stream) geom.Vec {
	return geom.Vec{c.X.Sample(s), c.Y.Sample(s), c.Z.Sample(s)}
}

// CylindricalIndependent samples r, theta, and z independently and maps the
// result to Cartesian coordinates. The radius draw deliberately carries no
// area-element correction; a caller that wants positions uniform over an
// annulus must fold the Jacobian into its radius distribution.
type CylindricalIndependent struct {
	R, Theta, Z Distribution
}

func (c *CylindricalIndependent) Sample(s *rnd.Stream) geom.Vec {
	r := c.R.Sample(s)
	theta := c.Theta.Sample(s)
	return geom.Vec{r * math.Cos(theta), r * math.Sin(theta), c.Z.Sample(s)}
}

// Box samples uniformly over an axis-aligned box. OnlyFissionable is a
// restriction flag consumed by the caller: rejection against the material
// map is the caller's job, not the sampler's.
type Box struct {
	LowerLeft, UpperRight geom.Vec
	OnlyFissionable       bool
}

func (b *Box) Sample(s *rnd.Stream) geom.Vec {
	xi := geom.Vec{s.Uniform(), s.Uniform(), s.Uniform()}
	span := b.UpperRight.Sub(b.LowerLeft)
	return geom.Vec{
		b.LowerLeft[0] + xi[0]*span[0],
		b.LowerLeft[1] + xi[1]*span[1],
		b.LowerLeft[2] + xi[2]*span[2],
	}
}

// FixedPoint always samples its configured coordinate.
type FixedPoint struct {
	R geom.Vec
}

func (p *FixedPoint) Sample(s *rnd.Stream) geom.Vec { return p.R }

// IsotropicDirection samples a unit direction uniformly over the sphere.
func IsotropicDirection(s *rnd.Stream) geom.Vec {
	mu := 2*s.Uniform() - 1
	phi := 2 * math.Pi * s.Uniform()
	sin := math.Sqrt(1 - mu*mu)
	return geom.Vec{sin * math.Cos(phi), sin * math.Sin(phi), mu}
}
