package engine

import "github.com/san-kum/md2d/internal/pressure"

// bounceAtomOffWalls reflects atom i elastically off the hard domain
// boundaries. A runaway step is first folded back by an integer number of
// domain widths so the reflection lands near the wall it crossed.
func (e *Engine) bounceAtomOffWalls(i int) {
	a := e.atoms
	r := a.Radius[i]

	span := e.lx - 2*r
	if a.X[i] < r {
		if span > 0 {
			for a.X[i] < r-span {
				a.X[i] += span
			}
		}
		a.X[i] = 2*r - a.X[i]
		a.VX[i] = -a.VX[i]
		a.PX[i] = -a.PX[i]
	} else if a.X[i] > e.lx-r {
		if span > 0 {
			for a.X[i] > e.lx-r+span {
				a.X[i] -= span
			}
		}
		a.X[i] = 2*(e.lx-r) - a.X[i]
		a.VX[i] = -a.VX[i]
		a.PX[i] = -a.PX[i]
	}

	span = e.ly - 2*r
	if a.Y[i] < r {
		if span > 0 {
			for a.Y[i] < r-span {
				a.Y[i] += span
			}
		}
		a.Y[i] = 2*r - a.Y[i]
		a.VY[i] = -a.VY[i]
		a.PY[i] = -a.PY[i]
	} else if a.Y[i] > e.ly-r {
		if span > 0 {
			for a.Y[i] > e.ly-r+span {
				a.Y[i] -= span
			}
		}
		a.Y[i] = 2*(e.ly-r) - a.Y[i]
		a.VY[i] = -a.VY[i]
		a.PY[i] = -a.PY[i]
	}
}

// elastic1D resolves a head-on collision between masses m1 and m2 with
// the standard two-body formulas.
func elastic1D(m1, v1, m2, v2 float64) (float64, float64) {
	sum := m1 + m2
	return ((m1-m2)*v1 + 2*m2*v2) / sum, ((m2-m1)*v2 + 2*m1*v1) / sum
}

// bounceAtomOffObstacles reflects atom i off any obstacle it has entered.
// The crossed wall is determined from the previous atom and obstacle
// positions, testing west, east, south, north in that priority so corner
// hits resolve deterministically. Movable obstacles exchange momentum
// through a 1D elastic collision on the normal component; immovable ones
// just flip the atom's normal velocity. Probed walls accumulate the
// normal momentum transfer.
func (e *Engine) bounceAtomOffObstacles(i int, x0, y0 float64, updatePressure bool) {
	a := e.atoms
	o := e.obstacles
	r := a.Radius[i]
	m := a.Mass[i]

	for k := 0; k < o.N; k++ {
		left := o.X[k] - r
		right := o.X[k] + o.Width[k] + r
		bottom := o.Y[k] - r
		top := o.Y[k] + o.Height[k] + r
		if a.X[i] <= left || a.X[i] >= right || a.Y[i] <= bottom || a.Y[i] >= top {
			continue
		}

		leftPrev := o.PrevX[k] - r
		rightPrev := o.PrevX[k] + o.Width[k] + r
		bottomPrev := o.PrevY[k] - r
		topPrev := o.PrevY[k] + o.Height[k] + r
		movable := o.Movable(k)

		switch {
		case x0 <= leftPrev:
			a.X[i] = 2*left - a.X[i]
			before := a.VX[i]
			if movable {
				a.VX[i], o.VX[k] = elastic1D(m, a.VX[i], o.Mass[k], o.VX[k])
			} else {
				a.VX[i] = -a.VX[i]
			}
			if updatePressure && o.Probe[k][pressure.West] {
				o.Impulse[k][pressure.West] += m * (before - a.VX[i])
			}
		case x0 >= rightPrev:
			a.X[i] = 2*right - a.X[i]
			before := a.VX[i]
			if movable {
				a.VX[i], o.VX[k] = elastic1D(m, a.VX[i], o.Mass[k], o.VX[k])
			} else {
				a.VX[i] = -a.VX[i]
			}
			if updatePressure && o.Probe[k][pressure.East] {
				o.Impulse[k][pressure.East] += m * (a.VX[i] - before)
			}
		case y0 <= bottomPrev:
			a.Y[i] = 2*bottom - a.Y[i]
			before := a.VY[i]
			if movable {
				a.VY[i], o.VY[k] = elastic1D(m, a.VY[i], o.Mass[k], o.VY[k])
			} else {
				a.VY[i] = -a.VY[i]
			}
			if updatePressure && o.Probe[k][pressure.South] {
				o.Impulse[k][pressure.South] += m * (before - a.VY[i])
			}
		case y0 >= topPrev:
			a.Y[i] = 2*top - a.Y[i]
			before := a.VY[i]
			if movable {
				a.VY[i], o.VY[k] = elastic1D(m, a.VY[i], o.Mass[k], o.VY[k])
			} else {
				a.VY[i] = -a.VY[i]
			}
			if updatePressure && o.Probe[k][pressure.North] {
				o.Impulse[k][pressure.North] += m * (a.VY[i] - before)
			}
		}

		a.PX[i] = m * a.VX[i]
		a.PY[i] = m * a.VY[i]
	}
}

// bounceObstacleOffWalls keeps a movable obstacle inside the domain,
// reflecting elastically.
func (e *Engine) bounceObstacleOffWalls(k int) {
	o := e.obstacles
	if o.X[k] < 0 {
		o.X[k] = -o.X[k]
		o.VX[k] = -o.VX[k]
	} else if o.X[k] > e.lx-o.Width[k] {
		o.X[k] = 2*(e.lx-o.Width[k]) - o.X[k]
		o.VX[k] = -o.VX[k]
	}
	if o.Y[k] < 0 {
		o.Y[k] = -o.Y[k]
		o.VY[k] = -o.VY[k]
	} else if o.Y[k] > e.ly-o.Height[k] {
		o.Y[k] = 2*(e.ly-o.Height[k]) - o.Y[k]
		o.VY[k] = -o.VY[k]
	}
}
