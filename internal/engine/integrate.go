package engine

import (
	"fmt"
	"math"
)

// Integrate advances the simulation by ⌊duration/dt⌋ velocity-Verlet steps
// of size dt (fs). Each step: half-kick, drift with wall and obstacle
// collisions, force recomputation with neighbor-list maintenance, pin
// mask, second half-kick, obstacle motion, thermostat. Afterwards the
// pressure buffers are advanced by the full duration.
func (e *Engine) Integrate(duration, dt float64) error {
	if e.atoms == nil || e.atoms.N == 0 {
		return ErrNoAtoms
	}
	if dt <= 0 {
		return fmt.Errorf("engine: dt must be positive, got %g", dt)
	}
	if duration <= 0 {
		return fmt.Errorf("engine: duration must be positive, got %g", duration)
	}
	a := e.atoms
	if len(e.prevX) < a.N {
		e.prevX = make([]float64, a.N)
		e.prevY = make([]float64, a.N)
	}

	// a(0) must exist before the very first half-kick
	if e.time == 0 {
		e.updateAccelerations()
		e.applyPinMask()
	}

	steps := int(duration / dt)
	for s := 0; s < steps; s++ {
		e.halfKick(dt)
		if err := e.drift(dt, s); err != nil {
			return err
		}
		e.updateAccelerations()
		e.applyPinMask()
		e.halfKick(dt)
		for i := 0; i < a.N; i++ {
			a.Speed[i] = math.Hypot(a.VX[i], a.VY[i])
		}
		e.updateObstacles(dt)
		e.adjustTemperature(false)
		e.time += dt
	}

	e.advancePressureBuffers(duration)
	return nil
}

func (e *Engine) halfKick(dt float64) {
	a := e.atoms
	half := 0.5 * dt
	for i := 0; i < a.N; i++ {
		if a.Pinned[i] {
			continue
		}
		a.VX[i] += half * a.AX[i]
		a.VY[i] += half * a.AY[i]
		a.PX[i] = a.Mass[i] * a.VX[i]
		a.PY[i] = a.Mass[i] * a.VY[i]
	}
}

func (e *Engine) drift(dt float64, step int) error {
	a := e.atoms
	guardX := 100 * e.lx
	guardY := 100 * e.ly
	for i := 0; i < a.N; i++ {
		e.prevX[i], e.prevY[i] = a.X[i], a.Y[i]
		if a.Pinned[i] {
			continue
		}
		a.X[i] += a.VX[i] * dt
		a.Y[i] += a.VY[i] * dt
		if math.IsNaN(a.X[i]) || math.IsNaN(a.Y[i]) ||
			math.Abs(a.X[i]) > guardX || math.Abs(a.Y[i]) > guardY {
			return &StepError{Step: step, Time: e.time, Wrapped: ErrDiverged}
		}
		e.bounceAtomOffWalls(i)
		e.bounceAtomOffObstacles(i, e.prevX[i], e.prevY[i], true)
	}
	return nil
}

// applyPinMask forces pinned atoms to zero velocity and acceleration.
func (e *Engine) applyPinMask() {
	a := e.atoms
	for i := 0; i < a.N; i++ {
		if !a.Pinned[i] {
			continue
		}
		a.VX[i], a.VY[i] = 0, 0
		a.AX[i], a.AY[i] = 0, 0
		a.PX[i], a.PY[i] = 0, 0
		a.Speed[i] = 0
	}
}

// updateObstacles integrates movable obstacles with a one-step kinematic
// formula under external per-mass force, drag and gravity, then bounces
// them off the walls. Previous positions are saved for collision-side
// discrimination either way.
func (e *Engine) updateObstacles(dt float64) {
	o := e.obstacles
	for k := 0; k < o.N; k++ {
		o.PrevX[k], o.PrevY[k] = o.X[k], o.Y[k]
		if !o.Movable(k) {
			continue
		}
		ax := o.ExternalFX[k] - o.Friction[k]*o.VX[k]
		ay := o.ExternalFY[k] - o.Friction[k]*o.VY[k] - e.gravity
		o.X[k] += o.VX[k]*dt + 0.5*ax*dt*dt
		o.Y[k] += o.VY[k]*dt + 0.5*ay*dt*dt
		o.VX[k] += ax * dt
		o.VY[k] += ay * dt
		e.bounceObstacleOffWalls(k)
	}
}

func (e *Engine) advancePressureBuffers(duration float64) {
	o := e.obstacles
	impulses := make([][4]float64, o.N)
	for k := 0; k < o.N; k++ {
		impulses[k] = o.Impulse[k]
		o.Impulse[k] = [4]float64{}
	}
	e.buffers.Advance(impulses, duration)
}
