package io

import (
	"gopkg.in/gcfg.v1"
)

const ExampleRunFile = `[Run]

#######################
# Required Parameters #
#######################

# Number of particle histories per batch.
Histories = 100000

# Number of batches. Lost-particle thresholds are checked between batches.
Batches = 10

# YAML file describing the spatial source distribution.
SourceFile = path/to/source.yaml

#######################
# Optional Parameters #
#######################

# Master seed for the pseudorandom stream. Every history draws from a
# substream keyed by its history index, so a fixed seed reproduces the run
# exactly regardless of thread count.
# Seed = 1

# Number of worker goroutines. Default is the number of logical cores.
# Threads = 8

# Columnar text file of source sites (x y z u v w energy weight kind
# delayed-group). When set, histories are seeded round-robin from these
# sites instead of sampling SourceFile.
# SourceSitesFile = path/to/sites.txt

# Directory restart snapshots of lost particles are written to.
# RestartDir = restarts

# Log file. Defaults to stderr.
# LogFile = run.log

# Source particle energy in eV for distribution-sampled sources.
# SourceEnergy = 1e6

# Energy bounds in eV for validating source sites.
# EnergyMin = 0
# EnergyMax = 20e6

# Survival biasing weight cutoff and survival weight.
# WeightCutoff = 0.25
# WeightSurvive = 1.0

# Hard cap on collisions per history. 0 means unlimited.
# MaxCollisions = 0

# Lost-particle tolerances, absolute and relative to total histories.
# Exceeding either aborts the run at the next batch boundary.
# MaxLostParticles = 10
# RelMaxLostParticles = 1e-6

# Built-in slab model: half width in cm, boundary condition at both faces
# (one of [ vacuum | reflective ]), and one-speed physics constants.
# SlabHalfWidth = 50
# BoundaryCondition = vacuum
# SigmaTotal = 0.1
# AbsorptionProb = 0.3
# FissionProb = 0.4
# NuBar = 2.43
# SurvivalBiasing = true`

// RunConfig is the [Run] section of a run configuration file.
type RunConfig struct {
	// Required
	Histories  int
	Batches    int
	SourceFile string

	// Optional
	Seed            int64
	Threads         int
	SourceSitesFile string
	RestartDir      string
	LogFile         string

	SourceEnergy         float64
	EnergyMin, EnergyMax float64

	WeightCutoff, WeightSurvive float64
	MaxCollisions               int

	MaxLostParticles    int
	RelMaxLostParticles float64

	SlabHalfWidth     float64
	BoundaryCondition string
	SigmaTotal        float64
	AbsorptionProb    float64
	FissionProb       float64
	NuBar             float64
	SurvivalBiasing   bool
}

type RunWrapper struct {
	Run RunConfig
}

// DefaultRunWrapper returns a wrapper preloaded with the defaults a config
// file may override.
func DefaultRunWrapper() *RunWrapper {
	con := RunConfig{}
	con.Seed = 1
	con.SourceEnergy = 1e6
	con.EnergyMin = 0
	con.EnergyMax = 20e6
	con.WeightCutoff = 0.25
	con.WeightSurvive = 1.0
	con.MaxLostParticles = 10
	con.RelMaxLostParticles = 1e-6
	con.SlabHalfWidth = 50
	con.BoundaryCondition = "vacuum"
	con.SigmaTotal = 0.1
	con.AbsorptionProb = 0.3
	con.FissionProb = 0.4
	con.NuBar = 2.43
	return &RunWrapper{con}
}

// ReadRunConfig reads a [Run] config file into the wrapper.
func ReadRunConfig(fname string, wrap *RunWrapper) error {
	return gcfg.ReadFileInto(wrap, fname)
}

func (con *RunConfig) ValidHistories() bool {
	return con.Histories > 0
}
func (con *RunConfig) ValidBatches() bool {
	return con.Batches > 0
}
func (con *RunConfig) ValidSourceFile() bool {
	return con.SourceFile != "" || con.SourceSitesFile != ""
}
func (con *RunConfig) ValidEnergyBounds() bool {
	return con.EnergyMin >= 0 && con.EnergyMin < con.EnergyMax
}
func (con *RunConfig) ValidWeightCutoff() bool {
	return con.WeightCutoff >= 0 && con.WeightSurvive >= con.WeightCutoff
}
func (con *RunConfig) ValidBoundaryCondition() bool {
	return con.BoundaryCondition == "vacuum" ||
		con.BoundaryCondition == "reflective"
}
func (con *RunConfig) ValidSlabHalfWidth() bool {
	return con.SlabHalfWidth > 0
}
func (con *RunConfig) ValidSigmaTotal() bool {
	return con.SigmaTotal > 0
}
func (con *RunConfig) ValidProbabilities() bool {
	return con.AbsorptionProb >= 0 && con.AbsorptionProb <= 1 &&
		con.FissionProb >= 0 && con.FissionProb <= 1 &&
		con.NuBar >= 0
}
func (con *RunConfig) ValidLostTolerances() bool {
	return con.MaxLostParticles >= 0 && con.RelMaxLostParticles >= 0
}
