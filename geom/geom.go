/*package geom provides the small amount of vector algebra that particle
transport needs. Positions and directions are both represented as Vec.
*/
package geom

import (
	"math"
)

// Vec is a vector in 3-space. Indices 0, 1, 2 correspond to x, y, z.
type Vec [3]float64

func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

func (v Vec) Scale(a float64) Vec {
	return Vec{v[0] * a, v[1] * a, v[2] * a}
}

func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector pointing in the same direction as v. The
// zero vector is returned unchanged.
func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n == 0 { return v }
	return v.Scale(1 / n)
}

// Reflect returns the direction v reflected about the plane with the given
// unit normal.
func (v Vec) Reflect(n Vec) Vec {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}
