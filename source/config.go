package source

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v3"

	"github.com/gomc-dev/gomc/geom"
)

const ExampleSourceFile = `# Spatial source definition. Type must be one of
# [ cartesian | cylindrical | box | fission | point ].
#
# cartesian and cylindrical take optional child distributions (x, y, z) or
# (r, theta, z). An omitted child is replaced by an explicit point
# distribution at 0. box and fission take exactly six parameters (lower x,
# y, z then upper x, y, z); point takes exactly three.
type: cartesian

x:
  type: uniform
  parameters: [-5, 5]

y:
  type: uniform
  parameters: [-5, 5]

# z omitted: sources are seeded on the z = 0 plane.
`

// Config is one node of a source description tree. Leaf nodes describe 1-D
// distributions, interior nodes describe spatial distributions that own
// their children.
type Config struct {
	Type            string    `yaml:"type"`
	Parameters      []float64 `yaml:"parameters,omitempty"`
	Probabilities   []float64 `yaml:"probabilities,omitempty"`
	OnlyFissionable bool      `yaml:"only_fissionable,omitempty"`

	X     *Config `yaml:"x,omitempty"`
	Y     *Config `yaml:"y,omitempty"`
	Z     *Config `yaml:"z,omitempty"`
	R     *Config `yaml:"r,omitempty"`
	Theta *Config `yaml:"theta,omitempty"`
}

// defaultPoint is the distribution substituted for an absent axis child: a
// single point at zero. The substitution is done here, in the schema layer,
// so the default shows up in errors and debug output instead of being an
// implicit absence.
func defaultPoint() *Config {
	return &Config{Type: "point", Parameters: []float64{0}}
}

func orDefault(c *Config) *Config {
	if c == nil {
		return defaultPoint()
	}
	return c
}

// DistributionFromConfig builds a 1-D distribution from a leaf node.
func DistributionFromConfig(c *Config) (Distribution, error) {
	switch c.Type {
	case "point":
		if len(c.Parameters) != 1 {
			return nil, fmt.Errorf(
				"point distribution must have one parameter, got %d",
				len(c.Parameters),
			)
		}
		return &Point{X: c.Parameters[0]}, nil
	case "uniform":
		if len(c.Parameters) != 2 {
			return nil, fmt.Errorf(
				"uniform distribution must have two parameters, got %d",
				len(c.Parameters),
			)
		}
		a, b := c.Parameters[0], c.Parameters[1]
		if a >= b {
			return nil, fmt.Errorf(
				"uniform distribution needs bounds a < b, got [%g, %g)", a, b,
			)
		}
		return &Uniform{A: a, B: b}, nil
	case "discrete":
		return NewDiscrete(c.Parameters, c.Probabilities)
	}
	return nil, fmt.Errorf("unknown 1-D distribution type '%s'", c.Type)
}

// SpatialFromConfig builds a spatial distribution from a description tree.
// Configuration errors are detected here, before any history runs.
func SpatialFromConfig(c *Config) (Spatial, error) {
	switch c.Type {
	case "cartesian":
		return cartesianFromConfig(c)
	case "cylindrical":
		return cylindricalFromConfig(c)
	case "box", "fission":
		if len(c.Parameters) != 6 {
			return nil, fmt.Errorf(
				"%s spatial source must have six parameters, got %d",
				c.Type, len(c.Parameters),
			)
		}
		return &Box{
			LowerLeft:       geom.Vec{c.Parameters[0], c.Parameters[1], c.Parameters[2]},
			UpperRight:      geom.Vec{c.Parameters[3], c.Parameters[4], c.Parameters[5]},
			OnlyFissionable: c.Type == "fission" || c.OnlyFissionable,
		}, nil
	case "point":
		if len(c.Parameters) != 3 {
			return nil, fmt.Errorf(
				"point spatial source must have three parameters, got %d",
				len(c.Parameters),
			)
		}
		return &FixedPoint{
			R: geom.Vec{c.Parameters[0], c.Parameters[1], c.Parameters[2]},
		}, nil
	}
	return nil, fmt.Errorf("unknown spatial source type '%s'", c.Type)
}

func cartesianFromConfig(c *Config) (Spatial, error) {
	out := &CartesianIndependent{}
	var err error
	if out.X, err = DistributionFromConfig(orDefault(c.X)); err != nil {
		return nil, err
	}
	if out.Y, err = DistributionFromConfig(orDefault(c.Y)); err != nil {
		return nil, err
	}
	if out.Z, err = DistributionFromConfig(orDefault(c.Z)); err != nil {
		return nil, err
	}
	return out, nil
}

func cylindricalFromConfig(c *Config) (Spatial, error) {
	out := &CylindricalIndependent{}
	var err error
	if out.R, err = DistributionFromConfig(orDefault(c.R)); err != nil {
		return nil, err
	}
	if out.Theta, err = DistributionFromConfig(orDefault(c.Theta)); err != nil {
		return nil, err
	}
	if out.Z, err = DistributionFromConfig(orDefault(c.Z)); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseSpatial builds a spatial distribution from a YAML description.
func ParseSpatial(data []byte) (Spatial, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return SpatialFromConfig(c)
}

// ReadSpatialFile builds a spatial distribution from a YAML file.
func ReadSpatialFile(fname string) (Spatial, error) {
	data, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return ParseSpatial(data)
}
