package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/gomc-dev/gomc"
	"github.com/gomc-dev/gomc/geom"
)

// Source site files are whitespace-separated columns:
// x y z u v w energy weight kind delayed-group
const (
	xCol, yCol, zCol = 0, 1, 2
	uCol, vCol, wCol = 3, 4, 5
	eCol             = 6
	weightCol        = 7
	kindCol          = 8
	delayedCol       = 9
)

// ReadSites reads an external source bank from a columnar text file. Each
// row becomes one source site; directions are normalized on read.
func ReadSites(file string) ([]gomc.Site, error) {
	colIdxs := []int{
		xCol, yCol, zCol, uCol, vCol, wCol, eCol, weightCol,
		kindCol, delayedCol,
	}
	cols, err := table.ReadTable(file, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	n := len(cols[0])
	sites := make([]gomc.Site, n)
	for i := 0; i < n; i++ {
		kind := gomc.Kind(int(cols[kindCol][i]))
		if kind < gomc.Neutron || kind > gomc.Positron {
			return nil, fmt.Errorf(
				"row %d of %s: unknown particle kind %d", i+1, file,
				int(cols[kindCol][i]),
			)
		}

		dir := geom.Vec{cols[uCol][i], cols[vCol][i], cols[wCol][i]}
		if dir.Norm() == 0 {
			return nil, fmt.Errorf(
				"row %d of %s: zero direction vector", i+1, file,
			)
		}

		sites[i] = gomc.Site{
			Pos:          geom.Vec{cols[xCol][i], cols[yCol][i], cols[zCol][i]},
			Dir:          dir.Normalize(),
			E:            cols[eCol][i],
			Weight:       cols[weightCol][i],
			Kind:         kind,
			DelayedGroup: int(cols[delayedCol][i]),
		}
	}
	return sites, nil
}
