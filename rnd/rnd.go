/*package rnd implements the pseudorandom stream consumed by source sampling
and transport. The generator is a 63-bit multiplicative linear congruential
generator with O(log n) skip-ahead, which lets every particle history draw
from its own deterministically decorrelated substream: worker i simulating
history h calls Seed(h) and gets the same numbers no matter which worker runs
the history or in what order histories complete.
*/
package rnd

const (
	// LCG parameters: x' = g*x + c (mod 2^63).
	mult  uint64 = 2806196910506780709
	inc   uint64 = 1
	mask  uint64 = (1 << 63) - 1
	norm         = 1.0 / (1 << 63)

	// Number of draws reserved for a single history. Seeding by history
	// index skips this far ahead per history so that neighboring histories
	// never overlap even in pathological geometries.
	strideHistory uint64 = 152917
)

// Stream is an explicit pseudorandom stream handle. A Stream must not be
// shared between workers; each worker owns one and reseeds it per history.
type Stream struct {
	master uint64
	state  uint64
}

// New creates a stream with the given master seed. The master seed selects
// the whole simulation's random sequence; Seed selects a history's substream
// within it.
func New(master uint64) *Stream {
	s := &Stream{master: master & mask}
	s.state = s.master
	return s
}

// Seed positions the stream at the start of the substream for the given
// history index.
func (s *Stream) Seed(history int64) {
	s.state = skipAhead(s.master, uint64(history)*strideHistory)
}

// Uniform returns the next variate in [0, 1) and advances the stream.
func (s *Stream) Uniform() float64 {
	s.state = (mult*s.state + inc) & mask
	return float64(s.state) * norm
}

// UniformRange returns the next variate in [a, b).
func (s *Stream) UniformRange(a, b float64) float64 {
	return a + (b-a)*s.Uniform()
}

// skipAhead computes the LCG state n steps ahead of seed in O(log n) by
// repeated squaring of the transition function.
func skipAhead(seed, n uint64) uint64 {
	g, c := mult, inc
	gNew, cNew := uint64(1), uint64(0)
	for n > 0 {
		if n&1 == 1 {
			gNew = (gNew * g) & mask
			cNew = (cNew*g + c) & mask
		}
		c = ((g + 1) * c) & mask
		g = (g * g) & mask
		n >>= 1
	}
	return (gNew*seed + cNew) & mask
}
