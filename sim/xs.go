package sim

import (
	"fmt"
	"sort"
)

// XSTable is a pointwise cross-section table indexed by energy in eV.
// Lookups interpolate linearly between points and clamp at the table ends,
// so a physics model built on one stays defined over the whole energy range
// a source can produce.
type XSTable struct {
	energies []float64
	sigmas   []float64
}

// NewXSTable builds a table from parallel energy and cross-section slices.
// Energies must be strictly increasing and cross sections positive.
func NewXSTable(energies, sigmas []float64) (*XSTable, error) {
	if len(energies) != len(sigmas) || len(energies) < 2 {
		return nil, fmt.Errorf(
			"cross-section table needs at least two matching points, got "+
				"%d energies and %d values", len(energies), len(sigmas),
		)
	}
	for i := range energies {
		if i > 0 && energies[i] <= energies[i-1] {
			return nil, fmt.Errorf(
				"cross-section energies must be strictly increasing, but "+
					"point %d is %g after %g", i, energies[i], energies[i-1],
			)
		}
		if sigmas[i] <= 0 {
			return nil, fmt.Errorf(
				"cross section must be positive, but point %d is %g",
				i, sigmas[i],
			)
		}
	}
	return &XSTable{
		energies: append([]float64{}, energies...),
		sigmas:   append([]float64{}, sigmas...),
	}, nil
}

// Lookup returns the cross section at the given energy.
func (t *XSTable) Lookup(e float64) float64 {
	n := len(t.energies)
	if e <= t.energies[0] {
		return t.sigmas[0]
	}
	if e >= t.energies[n-1] {
		return t.sigmas[n-1]
	}

	i := sort.SearchFloat64s(t.energies, e)
	e0, e1 := t.energies[i-1], t.energies[i]
	s0, s1 := t.sigmas[i-1], t.sigmas[i]
	return s0 + (s1-s0)*(e-e0)/(e1-e0)
}
