// Package config describes simulation scenarios as YAML documents and
// builds engines from them.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/md2d/internal/engine"
)

const (
	DefaultDt       = 1.0    // fs
	DefaultDuration = 1000.0 // fs
	DefaultWidth    = 10.0   // nm
	DefaultHeight   = 10.0   // nm
)

type ElementConfig struct {
	Mass    float64 `yaml:"mass"`    // Dalton
	Epsilon float64 `yaml:"epsilon"` // eV, conventional negative sign
	Sigma   float64 `yaml:"sigma"`   // nm
}

type AtomConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	Element  int     `yaml:"element"`
	Charge   float64 `yaml:"charge"`
	Friction float64 `yaml:"friction"`
	Pinned   bool    `yaml:"pinned"`
}

type LatticeConfig struct {
	Element int     `yaml:"element"`
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
	Spacing float64 `yaml:"spacing"`
}

type RandomConfig struct {
	Element     int     `yaml:"element"`
	Count       int     `yaml:"count"`
	Temperature float64 `yaml:"temperature"`
}

type ObstacleConfig struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	VX         float64 `yaml:"vx"`
	VY         float64 `yaml:"vy"`
	Mass       float64 `yaml:"mass"` // 0 means immovable
	Friction   float64 `yaml:"friction"`
	ExternalFX float64 `yaml:"external_fx"`
	ExternalFY float64 `yaml:"external_fy"`
	WestProbe  bool    `yaml:"west_probe"`
	NorthProbe bool    `yaml:"north_probe"`
	EastProbe  bool    `yaml:"east_probe"`
	SouthProbe bool    `yaml:"south_probe"`
}

type RadialBondConfig struct {
	Atom1    int     `yaml:"atom1"`
	Atom2    int     `yaml:"atom2"`
	Length   float64 `yaml:"length"`   // nm
	Strength float64 `yaml:"strength"` // eV/nm²
}

type AngularBondConfig struct {
	Atom1    int     `yaml:"atom1"`
	Atom2    int     `yaml:"atom2"`
	Atom3    int     `yaml:"atom3"` // apex
	Angle    float64 `yaml:"angle"` // rad
	Strength float64 `yaml:"strength"`
}

type RestraintConfig struct {
	Atom int     `yaml:"atom"`
	K    float64 `yaml:"k"`
	X0   float64 `yaml:"x0"`
	Y0   float64 `yaml:"y0"`
}

type Config struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`

	LennardJones      bool    `yaml:"lennard_jones"`
	Coulomb           bool    `yaml:"coulomb"`
	Thermostat        bool    `yaml:"thermostat"`
	TargetTemperature float64 `yaml:"target_temperature"`
	Gravity           float64 `yaml:"gravity"`
	Viscosity         float64 `yaml:"viscosity"`
	VDWLinesRatio     float64 `yaml:"vdw_lines_ratio"`

	Elements     []ElementConfig     `yaml:"elements"`
	Atoms        []AtomConfig        `yaml:"atoms"`
	Lattice      *LatticeConfig      `yaml:"lattice"`
	Random       *RandomConfig       `yaml:"random"`
	Obstacles    []ObstacleConfig    `yaml:"obstacles"`
	RadialBonds  []RadialBondConfig  `yaml:"radial_bonds"`
	AngularBonds []AngularBondConfig `yaml:"angular_bonds"`
	Restraints   []RestraintConfig   `yaml:"restraints"`

	// OutputInterval is the number of steps between observable samples.
	OutputInterval int `yaml:"output_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:           "argon-gas",
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		LennardJones:   true,
		Elements:       []ElementConfig{{Mass: 39.95, Epsilon: -0.01034, Sigma: 0.34}},
		Random:         &RandomConfig{Count: 50, Temperature: 120},
		OutputInterval: 10,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AtomBudget returns the atom-array size the scenario needs.
func (c *Config) AtomBudget() int {
	n := len(c.Atoms)
	if c.Lattice != nil {
		n += c.Lattice.Rows * c.Lattice.Cols
	}
	if c.Random != nil {
		n += c.Random.Count
	}
	if n == 0 {
		n = 1
	}
	return n
}

// Build constructs and populates an engine from the scenario.
func (c *Config) Build() (*engine.Engine, error) {
	if len(c.Elements) == 0 {
		return nil, fmt.Errorf("config: scenario %q declares no elements", c.Name)
	}

	e := engine.New()
	if err := e.SetSize(c.Width, c.Height); err != nil {
		return nil, err
	}
	e.UseLennardJonesInteraction(c.LennardJones)
	e.UseCoulombInteraction(c.Coulomb)
	e.UseThermostat(c.Thermostat)
	if c.TargetTemperature > 0 {
		if err := e.SetTargetTemperature(c.TargetTemperature); err != nil {
			return nil, err
		}
	}
	e.SetGravitationalField(c.Gravity)
	e.SetViscosity(c.Viscosity)
	if c.VDWLinesRatio > 0 {
		e.SetVDWLinesRatio(c.VDWLinesRatio)
	}

	for _, el := range c.Elements {
		if err := e.AddElement(engine.ElementProps(el)); err != nil {
			return nil, err
		}
	}
	if err := e.CreateAtomsArray(c.AtomBudget()); err != nil {
		return nil, err
	}

	// obstacles first, so random placement steers clear of them
	for _, o := range c.Obstacles {
		mass := o.Mass
		if mass == 0 {
			mass = math.Inf(1)
		}
		_, err := e.AddObstacle(engine.ObstacleProps{
			X: o.X, Y: o.Y, Width: o.Width, Height: o.Height,
			VX: o.VX, VY: o.VY, Mass: mass, Friction: o.Friction,
			ExternalFX: o.ExternalFX, ExternalFY: o.ExternalFY,
			WestProbe: o.WestProbe, NorthProbe: o.NorthProbe,
			EastProbe: o.EastProbe, SouthProbe: o.SouthProbe,
			Visible: true,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, a := range c.Atoms {
		err := e.AddAtom(engine.AtomProps{
			X: a.X, Y: a.Y, VX: a.VX, VY: a.VY,
			Element: a.Element, Charge: a.Charge,
			Friction: a.Friction, Pinned: a.Pinned,
			Visible: true,
		})
		if err != nil {
			return nil, err
		}
	}
	if l := c.Lattice; l != nil {
		if err := e.SetupAtomsOnLattice(l.Element, l.Rows, l.Cols, l.OriginX, l.OriginY, l.Spacing); err != nil {
			return nil, err
		}
	}
	if r := c.Random; r != nil {
		if err := e.SetupAtomsRandomly(r.Element, r.Count, r.Temperature); err != nil {
			return nil, err
		}
	}

	for _, b := range c.RadialBonds {
		_, err := e.AddRadialBond(engine.RadialBondProps{
			Atom1: b.Atom1, Atom2: b.Atom2,
			Length: b.Length, Strength: b.Strength,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, b := range c.AngularBonds {
		if _, err := e.AddAngularBond(b.Atom1, b.Atom2, b.Atom3, b.Angle, b.Strength); err != nil {
			return nil, err
		}
	}
	for _, r := range c.Restraints {
		if _, err := e.AddRestraint(r.Atom, r.K, r.X0, r.Y0); err != nil {
			return nil, err
		}
	}

	return e, nil
}
