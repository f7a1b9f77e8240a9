/*package source implements the samplers that seed particle histories: a
family of 1-D distributions, the spatial distributions built from them, and
the configuration layer that constructs both.
*/
package source

import (
	"fmt"

	"github.com/gomc-dev/gomc/rnd"
)

// Distribution samples a single real value. Implementations own their
// parameters and mutate nothing at sample time except the stream they draw
// from.
type Distribution interface {
	Sample(s *rnd.Stream) float64
}

// Point is the degenerate distribution: every draw returns X.
type Point struct {
	X float64
}

func (p *Point) Sample(s *rnd.Stream) float64 { return p.X }

// Uniform samples uniformly on [A, B).
type Uniform struct {
	A, B float64
}

func (u *Uniform) Sample(s *rnd.Stream) float64 {
	return s.UniformRange(u.A, u.B)
}

// Discrete samples from a finite set of values with given probabilities.
type Discrete struct {
	xs, cumP []float64
}

// NewDiscrete creates a discrete distribution over xs with weights ps. The
// weights need not be normalized, but they must be non-negative and sum to
// a positive value.
func NewDiscrete(xs, ps []float64) (*Discrete, error) {
	if len(xs) != len(ps) || len(xs) == 0 {
		return nil, fmt.Errorf(
			"discrete distribution needs matching value and probability "+
				"lists, got %d values and %d probabilities", len(xs), len(ps),
		)
	}

	total := 0.0
	for _, p := range ps {
		if p < 0 {
			return nil, fmt.Errorf(
				"discrete distribution given negative probability %g", p,
			)
		}
		total += p
	}
	if total <= 0 {
		return nil, fmt.Errorf(
			"discrete distribution probabilities sum to %g", total,
		)
	}

	d := &Discrete{
		xs:   append([]float64{}, xs...),
		cumP: make([]float64, len(ps)),
	}
	sum := 0.0
	for i, p := range ps {
		sum += p / total
		d.cumP[i] = sum
	}
	d.cumP[len(d.cumP)-1] = 1
	return d, nil
}

func (d *Discrete) Sample(s *rnd.Stream) float64 {
	xi := s.Uniform()
	for i, c := range d.cumP {
		if xi < c {
			return d.xs[i]
		}
	}
	return d.xs[len(d.xs)-1]
}
