package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/md2d/internal/pairwise"
	"github.com/san-kum/md2d/internal/pressure"
	"github.com/san-kum/md2d/internal/units"
)

// CMState carries the center-of-mass observables.
type CMState struct {
	X, Y            float64
	PX, PY          float64
	VX, VY          float64
	AngularMomentum float64
	MomentOfInertia float64
	AngularVelocity float64
}

// OutputState is a caller-owned accumulator filled by ComputeOutputState,
// avoiding per-call allocation.
type OutputState struct {
	Time            float64
	PotentialEnergy float64 // eV
	KineticEnergy   float64 // eV
	Temperature     float64 // K
	CM              CMState
	Pressure        map[string]float64 // bar, keyed "obstacle<k>.<side>"
}

// ComputeOutputState fills out from the current physical state. It is
// read-only over that state but refreshes the radial-bond results mirror
// for downstream renderers.
func (e *Engine) ComputeOutputState(out *OutputState) {
	out.Time = e.time
	out.PotentialEnergy = e.potentialEnergy()
	out.KineticEnergy = e.totalKineticEnergy() * units.MWEnergyToEV
	out.Temperature = e.Temperature()
	e.computeCM(&out.CM)

	if out.Pressure == nil {
		out.Pressure = make(map[string]float64)
	}
	o := e.obstacles
	for k := 0; k < o.N; k++ {
		for s := pressure.Side(0); s < 4; s++ {
			if !o.Probe[k][s] {
				continue
			}
			length := o.Height[k]
			if s == pressure.North || s == pressure.South {
				length = o.Width[k]
			}
			key := fmt.Sprintf("obstacle%d.%s", k, s)
			out.Pressure[key] = e.buffers.PressureInBar(k, s, length)
		}
	}

	e.refreshRadialBondResults()
}

// potentialEnergy sums every enabled potential term in eV. Bonded pairs
// are excluded from the LJ and Coulomb sums so bonded interactions are
// not double-counted.
func (e *Engine) potentialEnergy() float64 {
	a := e.atoms
	if a == nil {
		return 0
	}
	pe := 0.0

	if e.useLJ {
		for i := 0; i < a.N; i++ {
			for j := i + 1; j < a.N; j++ {
				if e.bonded(i, j) {
					continue
				}
				dx := a.X[j] - a.X[i]
				dy := a.Y[j] - a.Y[i]
				r2 := dx*dx + dy*dy
				ei, ej := a.Element[i], a.Element[j]
				if r2 > 0 && r2 < e.cutoffSq[ei][ej] {
					pe += e.ljKernels[ei][ej].PotentialFromSquaredDistance(r2)
				}
			}
		}
	}

	if e.useCoulomb {
		for ci := 1; ci < len(e.chargedAtoms); ci++ {
			i := e.chargedAtoms[ci]
			for cj := 0; cj < ci; cj++ {
				j := e.chargedAtoms[cj]
				if e.bonded(i, j) {
					continue
				}
				dx := a.X[j] - a.X[i]
				dy := a.Y[j] - a.Y[i]
				r2 := dx*dx + dy*dy
				if r2 > 0 {
					pe += pairwise.CoulombPotentialFromSquaredDistance(r2, a.Charge[i], a.Charge[j])
				}
			}
		}
	}

	b := e.radialBonds
	for k := 0; k < b.N; k++ {
		dx := a.X[b.Atom2[k]] - a.X[b.Atom1[k]]
		dy := a.Y[b.Atom2[k]] - a.Y[b.Atom1[k]]
		d := math.Hypot(dx, dy) - b.Length[k]
		pe += 0.5 * b.Strength[k] * d * d
	}

	ab := e.angularBonds
	for k := 0; k < ab.N; k++ {
		i, j, apex := ab.Atom1[k], ab.Atom2[k], ab.Atom3[k]
		rijx, rijy := a.X[i]-a.X[apex], a.Y[i]-a.Y[apex]
		rkjx, rkjy := a.X[j]-a.X[apex], a.Y[j]-a.Y[apex]
		dij, dkj := math.Hypot(rijx, rijy), math.Hypot(rkjx, rkjy)
		if dij == 0 || dkj == 0 {
			continue
		}
		cos := (rijx*rkjx + rijy*rkjy) / (dij * dkj)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		d := math.Acos(cos) - ab.Angle[k]
		pe += 0.5 * ab.Strength[k] * d * d
	}

	r := e.restraints
	for k := 0; k < r.N; k++ {
		dx := a.X[r.Atom[k]] - r.X0[k]
		dy := a.Y[r.Atom[k]] - r.Y0[k]
		pe += 0.5 * r.K[k] * (dx*dx + dy*dy)
	}

	s := e.springs
	for k := range s.Active {
		if !s.Active[k] {
			continue
		}
		dx := a.X[s.Atom[k]] - s.X[k]
		dy := a.Y[s.Atom[k]] - s.Y[k]
		pe += 0.5 * s.Strength[k] * (dx*dx + dy*dy)
	}

	if e.gravity != 0 {
		g := 0.0
		for i := 0; i < a.N; i++ {
			g += a.Mass[i] * e.gravity * a.Y[i]
		}
		o := e.obstacles
		for k := 0; k < o.N; k++ {
			if o.Movable(k) {
				g += o.Mass[k] * e.gravity * o.Y[k]
			}
		}
		pe += g * units.MWEnergyToEV
	}

	return pe
}

// computeCM fills the center-of-mass observables. Recomputed on demand,
// not every step.
func (e *Engine) computeCM(cm *CMState) {
	a := e.atoms
	if a == nil || a.N == 0 {
		*cm = CMState{}
		return
	}
	n := a.N
	mass := a.Mass[:n]
	total := floats.Sum(mass)

	cm.X = floats.Dot(mass, a.X[:n]) / total
	cm.Y = floats.Dot(mass, a.Y[:n]) / total
	cm.PX = floats.Sum(a.PX[:n])
	cm.PY = floats.Sum(a.PY[:n])
	cm.VX = cm.PX / total
	cm.VY = cm.PY / total

	l, inertia := 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := a.X[i] - cm.X
		dy := a.Y[i] - cm.Y
		l += a.Mass[i] * (dx*(a.VY[i]-cm.VY) - dy*(a.VX[i]-cm.VX))
		inertia += a.Mass[i] * (dx*dx + dy*dy)
	}
	cm.AngularMomentum = l
	cm.MomentOfInertia = inertia
	if inertia > 0 {
		cm.AngularVelocity = l / inertia
	} else {
		cm.AngularVelocity = 0
	}
}

// VdwPairs lists the non-bonded, opposite- or zero-charge pairs currently
// within vdwLinesRatio·sigma, for rendering attraction lines.
type VdwPairs struct {
	Count        int
	Atom1, Atom2 []int
}

// UpdateVdwPairsArray recomputes the pair list in place. Capacity is the
// N(N−1)/2 upper bound, allocated once.
func (e *Engine) UpdateVdwPairsArray() {
	a := e.atoms
	if a == nil {
		return
	}
	maxPairs := a.N * (a.N - 1) / 2
	if cap(e.vdwPairs.Atom1) < maxPairs {
		e.vdwPairs.Atom1 = make([]int, maxPairs)
		e.vdwPairs.Atom2 = make([]int, maxPairs)
	}
	e.vdwPairs.Count = 0
	ratio2 := e.vdwLinesRatio * e.vdwLinesRatio
	for i := 0; i < a.N; i++ {
		for j := i + 1; j < a.N; j++ {
			if e.bonded(i, j) {
				continue
			}
			if a.Charge[i]*a.Charge[j] > 0 {
				continue
			}
			sig := e.pairSigma[a.Element[i]][a.Element[j]]
			dx := a.X[j] - a.X[i]
			dy := a.Y[j] - a.Y[i]
			if dx*dx+dy*dy < ratio2*sig*sig {
				k := e.vdwPairs.Count
				e.vdwPairs.Atom1[k] = i
				e.vdwPairs.Atom2[k] = j
				e.vdwPairs.Count++
			}
		}
	}
}

// VdwPairsArray exposes the last UpdateVdwPairsArray result.
func (e *Engine) VdwPairsArray() *VdwPairs { return &e.vdwPairs }

func (e *Engine) refreshRadialBondResults() {
	b := e.radialBonds
	if cap(e.radialBondResults) < b.N {
		e.radialBondResults = make([]RadialBondResult, b.N)
	}
	e.radialBondResults = e.radialBondResults[:b.N]
	a := e.atoms
	for k := 0; k < b.N; k++ {
		e.radialBondResults[k] = RadialBondResult{
			Atom1:    b.Atom1[k],
			Atom2:    b.Atom2[k],
			Length:   b.Length[k],
			Strength: b.Strength[k],
			Style:    b.Style[k],
			X1:       a.X[b.Atom1[k]],
			Y1:       a.Y[b.Atom1[k]],
			X2:       a.X[b.Atom2[k]],
			Y2:       a.Y[b.Atom2[k]],
		}
	}
}

// RadialBondResults exposes the mirror refreshed by ComputeOutputState.
func (e *Engine) RadialBondResults() []RadialBondResult { return e.radialBondResults }

// AtomKineticEnergy returns atom i's kinetic energy in eV.
func (e *Engine) AtomKineticEnergy(i int) float64 {
	a := e.atoms
	return 0.5 * a.Mass[i] * (a.VX[i]*a.VX[i] + a.VY[i]*a.VY[i]) * units.MWEnergyToEV
}
