package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	table := []struct {
		v Vec
	}{
		{Vec{1, 0, 0}},
		{Vec{1, 1, 1}},
		{Vec{-3, 4, 12}},
		{Vec{1e-8, 0, 2e-8}},
	}

	for i, line := range table {
		n := line.v.Normalize().Norm()
		if math.Abs(n-1) > 1e-12 {
			t.Errorf("%d) |Normalize(%v)| = %g, not 1.", i, line.v, n)
		}
	}
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec{}, Vec{}.Normalize())
}

func TestReflect(t *testing.T) {
	// Reflection about a face normal flips only the normal component and
	// preserves length.
	v := Vec{1, 2, 3}
	r := v.Reflect(Vec{1, 0, 0})
	assert.Equal(t, Vec{-1, 2, 3}, r)
	assert.InDelta(t, v.Norm(), r.Norm(), 1e-12)
}
