package source

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gomc-dev/gomc/geom"
	"github.com/gomc-dev/gomc/rnd"
)

func TestBoxParameterCount(t *testing.T) {
	table := []struct {
		params []float64
		ok     bool
	}{
		{[]float64{-1, -1, -1, 1, 1, 1}, true},
		{[]float64{-1, -1, -1, 1, 1}, false},
		{[]float64{-1, -1, -1, 1, 1, 1, 1}, false},
		{[]float64{}, false},
		{nil, false},
	}

	for i, line := range table {
		_, err := SpatialFromConfig(&Config{Type: "box", Parameters: line.params})
		if line.ok && err != nil {
			t.Errorf("%d) unexpected error: %v", i, err)
		} else if !line.ok && err == nil {
			t.Errorf("%d) expected an error for %d parameters", i, len(line.params))
		}
	}
}

func TestPointParameterCount(t *testing.T) {
	table := []struct {
		params []float64
		ok     bool
	}{
		{[]float64{1, 2, 3}, true},
		{[]float64{1, 2}, false},
		{[]float64{1, 2, 3, 4}, false},
		{nil, false},
	}

	for i, line := range table {
		_, err := SpatialFromConfig(&Config{Type: "point", Parameters: line.params})
		if line.ok && err != nil {
			t.Errorf("%d) unexpected error: %v", i, err)
		} else if !line.ok && err == nil {
			t.Errorf("%d) expected an error for %d parameters", i, len(line.params))
		}
	}
}

func TestUnknownTypeFails(t *testing.T) {
	_, err := SpatialFromConfig(&Config{Type: "spherical"})
	assert.Error(t, err)

	_, err = DistributionFromConfig(&Config{Type: "maxwell"})
	assert.Error(t, err)
}

func TestUniformDegenerateBoundsFail(t *testing.T) {
	_, err := DistributionFromConfig(
		&Config{Type: "uniform", Parameters: []float64{2, 2}},
	)
	assert.Error(t, err)
}

func TestFissionTypeSetsOnlyFissionable(t *testing.T) {
	space, err := SpatialFromConfig(&Config{
		Type:       "fission",
		Parameters: []float64{-1, -1, -1, 1, 1, 1},
	})
	assert.NoError(t, err)
	assert.True(t, space.(*Box).OnlyFissionable)
}

func TestParseSpatialYAML(t *testing.T) {
	data := []byte(`
type: cartesian
x:
  type: uniform
  parameters: [-5, 5]
y:
  type: point
  parameters: [2]
`)
	space, err := ParseSpatial(data)
	assert.NoError(t, err)

	// y is fixed and z defaults to a point at 0.
	s := rnd.New(1)
	for draw := 0; draw < 100; draw++ {
		r := space.Sample(s)
		if r[0] < -5 || r[0] >= 5 {
			t.Fatalf("draw %d: x = %g outside [-5, 5)", draw, r[0])
		}
		assert.Equal(t, 2.0, r[1])
		assert.Equal(t, 0.0, r[2])
	}
}

func TestParseSpatialBadYAMLFails(t *testing.T) {
	_, err := ParseSpatial([]byte("type: [broken"))
	assert.Error(t, err)
}

func TestCylindricalConfigDefaults(t *testing.T) {
	// All children absent: every sample lands exactly at the origin.
	space, err := SpatialFromConfig(&Config{Type: "cylindrical"})
	assert.NoError(t, err)

	s := rnd.New(1)
	assert.Equal(t, geom.Vec{0, 0, 0}, space.Sample(s))
}
