package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/gomc-dev/gomc"
	"github.com/gomc-dev/gomc/io"
	"github.com/gomc-dev/gomc/particle"
	"github.com/gomc-dev/gomc/sim"
	"github.com/gomc-dev/gomc/source"
)

// FileGroup holds the utility files a run writes logs to.
type FileGroup struct {
	log *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		runFile       string
		exampleConfig string
		threads       int
	)

	flag.StringVar(
		&runFile, "Run", "",
		"Configuration file with a [Run] section describing the simulation.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Run' and 'Source'.",
	)
	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of worker goroutines. Default is the number of logical cores.",
	)

	flag.Parse()

	switch {
	case exampleConfig != "":
		switch exampleConfig {
		case "Run":
			fmt.Println(io.ExampleRunFile)
		case "Source":
			fmt.Println(source.ExampleSourceFile)
		default:
			log.Fatalf(
				"Unrecognized -ExampleConfig argument '%s'. Accepted "+
					"arguments are 'Run' and 'Source'.", exampleConfig,
			)
		}
	case runFile != "":
		wrap := io.DefaultRunWrapper()
		if err := io.ReadRunConfig(runFile, wrap); err != nil {
			log.Fatal(err.Error())
		}
		runMain(&wrap.Run, threads)
	default:
		log.Fatal("Either -Run or -ExampleConfig must be given.")
	}
}

func runMain(con *io.RunConfig, threads int) {
	checkConfig(con)

	fg := &FileGroup{}
	defer fg.Close()
	if con.LogFile != "" {
		f, err := os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		fg.log = f
		log.SetOutput(f)
	}

	r := &sim.Runner{
		Histories:    int64(con.Histories),
		Batches:      con.Batches,
		Workers:      threads,
		Seed:         uint64(con.Seed),
		SourceEnergy: con.SourceEnergy,
		Kind:         gomc.Neutron,
		MaxLost:      int64(con.MaxLostParticles),
		RelMaxLost:   con.RelMaxLostParticles,
		Tally:        &sim.AtomicTally{},
	}

	r.Limits = particle.Limits{
		RunCE:         true,
		EnergyMin:     con.EnergyMin,
		EnergyMax:     con.EnergyMax,
		WeightCutoff:  con.WeightCutoff,
		WeightSurvive: con.WeightSurvive,
		MaxCollisions: con.MaxCollisions,
	}

	boundary := particle.BoundaryVacuum
	if con.BoundaryCondition == "reflective" {
		boundary = particle.BoundaryReflective
	}
	r.Geometry = &sim.Slab{HalfWidth: con.SlabHalfWidth, Boundary: boundary}
	r.Physics = &sim.OneSpeedPhysics{
		SigmaTotal:       con.SigmaTotal,
		PAbsorb:          con.AbsorptionProb,
		PFission:         con.FissionProb,
		NuBar:            con.NuBar,
		EnergyLossFactor: 0.5,
		SurvivalBiasing:  con.SurvivalBiasing,
		RunCE:            true,
	}

	if con.SourceSitesFile != "" {
		sites, err := io.ReadSites(con.SourceSitesFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		r.Sites = sites
	} else {
		space, err := source.ReadSpatialFile(con.SourceFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		r.Space = space
	}

	if con.RestartDir != "" {
		w, err := io.NewFileRestartWriter(con.RestartDir)
		if err != nil {
			log.Fatal(err.Error())
		}
		r.Restart = w
	}

	res, err := r.Run()
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf("Simulated %d histories.", res.Histories)
	log.Printf(
		"Collisions: %d  Absorptions: %d  Escapes: %d",
		r.Tally.NCollisions, r.Tally.NAbsorptions, r.Tally.NEscapes,
	)
	log.Printf(
		"Collision weight: %g  Leakage weight: %g",
		r.Tally.CollisionWeight(), r.Tally.LeakageWeight(),
	)
	log.Printf(
		"Fission sites banked: %d (weight %g)",
		len(res.FissionSites), res.FissionWeight,
	)
	if res.Lost > 0 {
		log.Printf("Lost particles: %d", res.Lost)
	}
}

func checkConfig(con *io.RunConfig) {
	switch {
	case !con.ValidHistories():
		log.Fatalf("Histories must be positive, but is %d.", con.Histories)
	case !con.ValidBatches():
		log.Fatalf("Batches must be positive, but is %d.", con.Batches)
	case !con.ValidSourceFile():
		log.Fatal("One of SourceFile or SourceSitesFile must be set.")
	case !con.ValidEnergyBounds():
		log.Fatalf(
			"Energy bounds must satisfy 0 <= EnergyMin < EnergyMax, but "+
				"are [%g, %g].", con.EnergyMin, con.EnergyMax,
		)
	case !con.ValidWeightCutoff():
		log.Fatalf(
			"WeightCutoff must satisfy 0 <= WeightCutoff <= WeightSurvive, "+
				"but WeightCutoff = %g and WeightSurvive = %g.",
			con.WeightCutoff, con.WeightSurvive,
		)
	case !con.ValidBoundaryCondition():
		log.Fatalf(
			"BoundaryCondition must be one of [ vacuum | reflective ], "+
				"but is '%s'.", con.BoundaryCondition,
		)
	case !con.ValidSlabHalfWidth():
		log.Fatalf(
			"SlabHalfWidth must be positive, but is %g.", con.SlabHalfWidth,
		)
	case !con.ValidSigmaTotal():
		log.Fatalf("SigmaTotal must be positive, but is %g.", con.SigmaTotal)
	case !con.ValidProbabilities():
		log.Fatal(
			"AbsorptionProb and FissionProb must be in [0, 1] and NuBar " +
				"must be non-negative.",
		)
	case !con.ValidLostTolerances():
		log.Fatal(
			"MaxLostParticles and RelMaxLostParticles must be non-negative.",
		)
	}
}
