package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/md2d/internal/pressure"
)

// ObstacleProps describes a movable axis-aligned rectangle. (X, Y) is the
// lower-left corner. Mass may be +Inf, making the obstacle immovable;
// ExternalFX/FY are per-mass forces (accelerations) applied while it
// moves. Probe flags enable directional impulse accounting per wall.
type ObstacleProps struct {
	X, Y          float64
	Width, Height float64
	VX, VY        float64
	ExternalFX    float64
	ExternalFY    float64
	Friction      float64
	Mass          float64

	WestProbe, NorthProbe, EastProbe, SouthProbe bool

	ColorR, ColorG, ColorB int
	Visible                bool
}

// Obstacles stores obstacles as parallel arrays. Impulse accumulates
// probe momentum transfer between pressure-buffer advances.
type Obstacles struct {
	N int

	X, Y           []float64
	Width, Height  []float64
	VX, VY         []float64
	ExternalFX     []float64
	ExternalFY     []float64
	Friction       []float64
	Mass           []float64
	PrevX, PrevY   []float64
	Probe          [][4]bool
	Impulse        [][4]float64
	ColorR, ColorG []int
	ColorB         []int
	Visible        []bool
}

func newObstacles() *Obstacles { return &Obstacles{} }

func (o *Obstacles) grow(to int) {
	if cap(o.X) >= to {
		return
	}
	to = ((to + growthChunk - 1) / growthChunk) * growthChunk
	growF := func(s []float64) []float64 {
		n := make([]float64, to)
		copy(n, s)
		return n
	}
	growI := func(s []int) []int {
		n := make([]int, to)
		copy(n, s)
		return n
	}
	o.X, o.Y = growF(o.X), growF(o.Y)
	o.Width, o.Height = growF(o.Width), growF(o.Height)
	o.VX, o.VY = growF(o.VX), growF(o.VY)
	o.ExternalFX, o.ExternalFY = growF(o.ExternalFX), growF(o.ExternalFY)
	o.Friction = growF(o.Friction)
	o.Mass = growF(o.Mass)
	o.PrevX, o.PrevY = growF(o.PrevX), growF(o.PrevY)
	probe := make([][4]bool, to)
	copy(probe, o.Probe)
	o.Probe = probe
	imp := make([][4]float64, to)
	copy(imp, o.Impulse)
	o.Impulse = imp
	o.ColorR, o.ColorG, o.ColorB = growI(o.ColorR), growI(o.ColorG), growI(o.ColorB)
	vis := make([]bool, to)
	copy(vis, o.Visible)
	o.Visible = vis
}

// Movable reports whether obstacle i responds to forces and collisions.
func (o *Obstacles) Movable(i int) bool { return !math.IsInf(o.Mass[i], 1) }

// AddObstacle appends an obstacle and a matching probe buffer set.
func (e *Engine) AddObstacle(p ObstacleProps) (int, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return 0, fmt.Errorf("engine: obstacle extent must be positive, got %gx%g", p.Width, p.Height)
	}
	if p.Mass <= 0 {
		return 0, fmt.Errorf("engine: obstacle mass must be positive (or +Inf), got %g", p.Mass)
	}
	o := e.obstacles
	o.grow(o.N + 1)
	i := o.N
	o.N++
	e.writeObstacle(i, p)
	e.buffers.AddObstacle()
	return i, nil
}

// SetObstacleProperties overwrites obstacle i.
func (e *Engine) SetObstacleProperties(i int, p ObstacleProps) error {
	o := e.obstacles
	if i < 0 || i >= o.N {
		return fmt.Errorf("engine: no obstacle %d", i)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("engine: obstacle extent must be positive, got %gx%g", p.Width, p.Height)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("engine: obstacle mass must be positive (or +Inf), got %g", p.Mass)
	}
	e.writeObstacle(i, p)
	return nil
}

func (e *Engine) writeObstacle(i int, p ObstacleProps) {
	o := e.obstacles
	o.X[i], o.Y[i] = p.X, p.Y
	o.Width[i], o.Height[i] = p.Width, p.Height
	o.VX[i], o.VY[i] = p.VX, p.VY
	o.ExternalFX[i], o.ExternalFY[i] = p.ExternalFX, p.ExternalFY
	o.Friction[i] = p.Friction
	o.Mass[i] = p.Mass
	o.PrevX[i], o.PrevY[i] = p.X, p.Y
	o.Probe[i][pressure.West] = p.WestProbe
	o.Probe[i][pressure.North] = p.NorthProbe
	o.Probe[i][pressure.East] = p.EastProbe
	o.Probe[i][pressure.South] = p.SouthProbe
	o.ColorR[i], o.ColorG[i], o.ColorB[i] = p.ColorR, p.ColorG, p.ColorB
	o.Visible[i] = p.Visible
}

// Clone returns a deep, independent copy.
func (o *Obstacles) Clone() *Obstacles {
	c := &Obstacles{N: o.N}
	c.X = append([]float64(nil), o.X...)
	c.Y = append([]float64(nil), o.Y...)
	c.Width = append([]float64(nil), o.Width...)
	c.Height = append([]float64(nil), o.Height...)
	c.VX = append([]float64(nil), o.VX...)
	c.VY = append([]float64(nil), o.VY...)
	c.ExternalFX = append([]float64(nil), o.ExternalFX...)
	c.ExternalFY = append([]float64(nil), o.ExternalFY...)
	c.Friction = append([]float64(nil), o.Friction...)
	c.Mass = append([]float64(nil), o.Mass...)
	c.PrevX = append([]float64(nil), o.PrevX...)
	c.PrevY = append([]float64(nil), o.PrevY...)
	c.Probe = append([][4]bool(nil), o.Probe...)
	c.Impulse = append([][4]float64(nil), o.Impulse...)
	c.ColorR = append([]int(nil), o.ColorR...)
	c.ColorG = append([]int(nil), o.ColorG...)
	c.ColorB = append([]int(nil), o.ColorB...)
	c.Visible = append([]bool(nil), o.Visible...)
	return c
}

// Restore fully overwrites this container from a clone.
func (o *Obstacles) Restore(from *Obstacles) {
	c := from.Clone()
	*o = *c
}
