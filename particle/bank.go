package particle

import (
	"fmt"

	"github.com/gomc-dev/gomc"
)

// SecondaryBank is the fixed-capacity buffer of source sites a particle
// emits during its history. It belongs to exactly one particle and needs no
// locking; the generation manager drains it wholesale after transport
// returns. Capacity is a hard bound: overflow means the run's physics
// produced more secondaries per history than the model anticipates, which
// is fatal rather than droppable.
type SecondaryBank struct {
	sites [gomc.MaxSecondary]gomc.Site
	n     int

	// WgtBank is the total statistical weight banked this history.
	WgtBank float64
	// NDelayedBank counts banked sites per delayed group. Group 0 (prompt)
	// is not counted here.
	NDelayedBank [gomc.MaxDelayedGroups]int
}

// Len returns the number of banked sites.
func (b *SecondaryBank) Len() int { return b.n }

// Sites returns the banked sites in emission order. The returned slice
// aliases the bank's backing array and is invalidated by Reset.
func (b *SecondaryBank) Sites() []gomc.Site { return b.sites[:b.n] }

// Reset empties the bank and zeroes its running counts.
func (b *SecondaryBank) Reset() {
	b.n = 0
	b.WgtBank = 0
	b.NDelayedBank = [gomc.MaxDelayedGroups]int{}
}

func (b *SecondaryBank) append(site *gomc.Site) {
	if b.n >= gomc.MaxSecondary {
		panic(fmt.Sprintf(
			"secondary bank full: a single history banked more than %d "+
				"sites", gomc.MaxSecondary,
		))
	}
	b.sites[b.n] = *site
	b.n++
	b.WgtBank += site.Weight
	if g := site.DelayedGroup; g > 0 && g <= gomc.MaxDelayedGroups {
		b.NDelayedBank[g-1]++
	}
}
