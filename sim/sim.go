/*package sim runs particle histories in batches: it seeds particles from a
source, transports them on worker goroutines, drains their secondary banks
into the fission bank for the next generation, and enforces the run-wide
lost-particle tolerances at batch boundaries.
*/
package sim

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gomc-dev/gomc"
	"github.com/gomc-dev/gomc/particle"
	"github.com/gomc-dev/gomc/rnd"
	"github.com/gomc-dev/gomc/source"
)

// Runner owns one simulation run. Every field is read-only once Run is
// called except the internal counters, which are synchronized.
type Runner struct {
	Histories int64 // histories per batch
	Batches   int
	Workers   int // 0 means one per logical core
	Seed      uint64

	// Space samples birth positions when Sites is empty; Sites seeds
	// histories round-robin from an external source bank instead.
	Space        source.Spatial
	Sites        []gomc.Site
	SourceEnergy float64
	Kind         gomc.Kind

	Geometry particle.Geometry
	Physics  particle.Physics
	Tally    *AtomicTally
	Restart  particle.RestartWriter
	Limits   particle.Limits

	// Lost-particle tolerances. Exceeding either aborts the run at the
	// next batch boundary.
	MaxLost    int64
	RelMaxLost float64

	nLost   int64
	fission fissionBank
}

// Result summarizes a completed run.
type Result struct {
	Histories     int64
	Lost          int64
	FissionSites  []gomc.Site
	FissionWeight float64
}

// fissionBank collects the sites drained from particle secondary banks
// across all workers. Appends are batched per history, so a single mutex
// does not serialize transport.
type fissionBank struct {
	mu    sync.Mutex
	sites []gomc.Site
	wgt   float64
}

func (b *fissionBank) add(sites []gomc.Site) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sites = append(b.sites, sites...)
	for i := range sites {
		b.wgt += sites[i].Weight
	}
}

// Run simulates Batches batches of Histories histories each and returns
// the run summary. Configuration errors from seeding abort immediately;
// lost particles only abort once a tolerance is exceeded.
func (r *Runner) Run() (*Result, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	total := int64(0)
	for batch := 0; batch < r.Batches; batch++ {
		if err := r.runBatch(int64(batch)*r.Histories, workers); err != nil {
			return nil, err
		}
		total += r.Histories

		// Cooperative threshold check: in-flight histories always finish
		// their bookkeeping before the run aborts.
		if err := r.checkLost(total); err != nil {
			return nil, err
		}
	}

	return &Result{
		Histories:     total,
		Lost:          atomic.LoadInt64(&r.nLost),
		FissionSites:  r.fission.sites,
		FissionWeight: r.fission.wgt,
	}, nil
}

func (r *Runner) runBatch(start int64, workers int) error {
	chunk := (r.Histories + int64(workers) - 1) / int64(workers)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		lo := start + int64(w)*chunk
		hi := lo + chunk
		if hi > start+r.Histories {
			hi = start + r.Histories
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(w int, lo, hi int64) {
			defer wg.Done()
			errs[w] = r.runWorker(lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// runWorker simulates histories [lo, hi). The worker owns its particle and
// stream for the whole range; each history reseeds the stream by history
// index so results do not depend on the worker split.
func (r *Runner) runWorker(lo, hi int64) error {
	s := rnd.New(r.Seed)
	p := &particle.Particle{}
	env := &particle.Environment{
		Geometry: r.Geometry,
		Physics:  r.Physics,
		Stream:   s,
		Limits:   r.Limits,
	}
	if r.Tally != nil {
		env.Tally = r.Tally
	}

	for h := lo; h < hi; h++ {
		s.Seed(h)
		site := r.site(h, s)

		if err := p.FromSource(&site, &env.Limits); err != nil {
			return fmt.Errorf("history %d: %v", h, err)
		}
		p.ID = h + 1
		p.Restart = r.Restart

		if err := r.Geometry.Place(p); err != nil {
			p.MarkAsLost(fmt.Sprintf("could not place source particle: %v", err))
		} else {
			p.CellBorn = p.Innermost().Cell
			p.Transport(env)
		}

		if p.Event == particle.EventEscape && r.Tally != nil {
			r.Tally.ScoreEscape(p)
		}
		if p.Lost() {
			atomic.AddInt64(&r.nLost, 1)
		}
		if p.Bank.Len() > 0 {
			r.fission.add(p.Bank.Sites())
		}
	}
	return nil
}

func (r *Runner) site(h int64, s *rnd.Stream) gomc.Site {
	if len(r.Sites) > 0 {
		return r.Sites[h%int64(len(r.Sites))]
	}
	return gomc.Site{
		Pos:    r.Space.Sample(s),
		Dir:    source.IsotropicDirection(s),
		E:      r.SourceEnergy,
		Weight: 1,
		Kind:   r.Kind,
	}
}

func (r *Runner) checkLost(total int64) error {
	nLost := atomic.LoadInt64(&r.nLost)
	if r.MaxLost > 0 && nLost > r.MaxLost {
		return fmt.Errorf(
			"%d particles lost, above the absolute tolerance of %d",
			nLost, r.MaxLost,
		)
	}
	if r.RelMaxLost > 0 && float64(nLost) > r.RelMaxLost*float64(total) {
		return fmt.Errorf(
			"%d of %d particles lost, above the relative tolerance of %g",
			nLost, total, r.RelMaxLost,
		)
	}
	return nil
}
