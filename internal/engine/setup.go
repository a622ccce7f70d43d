package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/md2d/internal/units"
)

// SetupAtomsOnLattice places rows×cols atoms of one element on a square
// lattice with the given spacing, lower-left corner at (originX, originY),
// zero velocity.
func (e *Engine) SetupAtomsOnLattice(element, rows, cols int, originX, originY, spacing float64) error {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := AtomProps{
				X:       originX + float64(col)*spacing,
				Y:       originY + float64(row)*spacing,
				Element: element,
				Visible: true,
			}
			if !e.AtomInBounds(element, p.X, p.Y) {
				return fmt.Errorf("engine: lattice site (%g, %g) outside the domain", p.X, p.Y)
			}
			if err := e.AddAtom(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetupAtomsRandomly places count non-overlapping atoms of one element at
// random positions and draws velocities for the requested temperature.
// The sampled velocities are rescaled so the instantaneous temperature
// matches exactly.
func (e *Engine) SetupAtomsRandomly(element, count int, temperature float64) error {
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) || temperature < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTemperature, temperature)
	}
	mass := e.elements.Mass[element]
	// mean speed for kB·T of kinetic energy per atom (two degrees of freedom)
	vMean := math.Sqrt(2 * units.TemperatureToKineticEnergy(temperature, 2) / mass)

	const maxTries = 500
	for n := 0; n < count; n++ {
		placed := false
		for try := 0; try < maxTries; try++ {
			x := rand.Float64() * e.lx
			y := rand.Float64() * e.ly
			if !e.CanPlaceAtom(element, x, y, -1) {
				continue
			}
			angle := rand.Float64() * 2 * math.Pi
			speed := vMean * (0.5 + rand.Float64())
			p := AtomProps{
				X:       x,
				Y:       y,
				VX:      speed * math.Cos(angle),
				VY:      speed * math.Sin(angle),
				Element: element,
				Visible: true,
			}
			if err := e.AddAtom(p); err != nil {
				return err
			}
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("engine: could not place atom %d of %d after %d tries", n+1, count, maxTries)
		}
	}

	if temperature > 0 {
		if t := e.Temperature(); t > 0 {
			scale := math.Sqrt(temperature / t)
			a := e.atoms
			for i := 0; i < a.N; i++ {
				a.VX[i] *= scale
				a.VY[i] *= scale
				a.PX[i] = a.Mass[i] * a.VX[i]
				a.PY[i] = a.Mass[i] * a.VY[i]
				a.Speed[i] = math.Hypot(a.VX[i], a.VY[i])
			}
		}
	}
	return nil
}
