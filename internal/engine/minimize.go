package engine

import (
	"math"

	"github.com/san-kum/md2d/internal/units"
)

const (
	// minimizeStepLength bounds the per-iteration displacement in nm.
	minimizeStepLength = 1e-3
	// minimizeThreshold is the convergence bound on the largest
	// acceleration component, in eV/nm per Dalton.
	minimizeThreshold = 1e-4
	minimizeIterLimit = 3000
)

// MinimizeEnergy relaxes the configuration by steepest descent on the
// accelerations: each iteration moves every free atom by
// stepLength/maxAcc along its acceleration, so the fastest atom moves
// exactly stepLength, until the largest component drops under the
// threshold or the iteration limit is hit. Velocities are discarded.
// Returns the number of iterations taken.
func (e *Engine) MinimizeEnergy() (int, error) {
	if e.atoms == nil || e.atoms.N == 0 {
		return 0, ErrNoAtoms
	}
	a := e.atoms

	for i := 0; i < a.N; i++ {
		a.VX[i], a.VY[i] = 0, 0
		a.PX[i], a.PY[i] = 0, 0
		a.Speed[i] = 0
	}

	threshold := minimizeThreshold * units.EVPerNMToMWForce

	for iter := 0; iter < minimizeIterLimit; iter++ {
		e.updateAccelerations()
		e.applyPinMask()

		maxAcc := 0.0
		for i := 0; i < a.N; i++ {
			if v := math.Abs(a.AX[i]); v > maxAcc {
				maxAcc = v
			}
			if v := math.Abs(a.AY[i]); v > maxAcc {
				maxAcc = v
			}
		}
		if maxAcc < threshold {
			return iter, nil
		}

		step := minimizeStepLength / maxAcc
		for i := 0; i < a.N; i++ {
			if a.Pinned[i] {
				continue
			}
			a.X[i] += a.AX[i] * step
			a.Y[i] += a.AY[i] * step
			e.bounceAtomOffWalls(i)
			// reflection may have flipped velocities that are pinned to zero
			a.VX[i], a.VY[i] = 0, 0
			a.PX[i], a.PY[i] = 0, 0
		}
	}
	return minimizeIterLimit, nil
}
