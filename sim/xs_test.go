package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXSTableLookup(t *testing.T) {
	table, err := NewXSTable(
		[]float64{1e3, 1e4, 1e5},
		[]float64{2.0, 1.0, 0.5},
	)
	assert.NoError(t, err)

	lines := []struct {
		e, want float64
	}{
		{1e3, 2.0},
		{1e4, 1.0},
		{1e5, 0.5},
		{5500, 1.5},   // midpoint of the first panel
		{1, 2.0},      // clamped low
		{1e9, 0.5},    // clamped high
		{55000, 0.75}, // midpoint of the second panel
	}
	for i, line := range lines {
		got := table.Lookup(line.e)
		if got != line.want {
			t.Errorf("%d) Lookup(%g) = %g, want %g", i, line.e, got, line.want)
		}
	}
}

func TestXSTableRejectsBadInput(t *testing.T) {
	_, err := NewXSTable([]float64{1, 2}, []float64{1})
	assert.Error(t, err)

	_, err = NewXSTable([]float64{2, 1}, []float64{1, 1})
	assert.Error(t, err)

	_, err = NewXSTable([]float64{1, 2}, []float64{1, -1})
	assert.Error(t, err)

	_, err = NewXSTable([]float64{1}, []float64{1})
	assert.Error(t, err)
}
