package engine

import (
	"math"

	"github.com/san-kum/md2d/internal/pairwise"
	"github.com/san-kum/md2d/internal/units"
)

// updateAccelerations zeroes the force arrays, accumulates every enabled
// force term in internal force units, divides by mass, then applies drag
// and gravity directly as accelerations.
//
// Neighbor-structure maintenance happens here: when any atom has drifted
// past half the Verlet skin, the cell and Verlet lists are rebuilt and the
// short-range pass runs off the cells, populating the Verlet list as it
// goes. Otherwise the pass iterates the Verlet list alone.
func (e *Engine) updateAccelerations() {
	a := e.atoms
	for i := 0; i < a.N; i++ {
		a.AX[i], a.AY[i] = 0, 0
	}

	if e.useLJ && a.N > 1 {
		if e.vlist.ShouldUpdate(a.X[:a.N], a.Y[:a.N]) {
			e.rebuildNeighborStructures()
			e.shortRangeForcesFromCells()
		} else {
			e.shortRangeForcesFromList()
		}
	}
	e.coulombForces()
	e.radialBondForces()
	e.angularBondForces()
	e.restraintForces()
	e.springForces()

	for i := 0; i < a.N; i++ {
		a.AX[i] /= a.Mass[i]
		a.AY[i] /= a.Mass[i]
	}

	if e.viscosity > 0 {
		for i := 0; i < a.N; i++ {
			a.AX[i] -= e.viscosity * a.Friction[i] * a.VX[i]
			a.AY[i] -= e.viscosity * a.Friction[i] * a.VY[i]
		}
	}
	if e.gravity != 0 {
		for i := 0; i < a.N; i++ {
			a.AY[i] -= e.gravity
		}
	}
}

func (e *Engine) rebuildNeighborStructures() {
	a := e.atoms
	e.cells.Clear()
	e.vlist.Clear(a.N)
	for i := 0; i < a.N; i++ {
		e.cells.AddToCell(i, a.X[i], a.Y[i])
		e.vlist.SaveAtomPosition(i, a.X[i], a.Y[i])
	}
}

// pairInteraction applies the LJ force between atoms i and j, marking the
// pair in the Verlet list when rebuilding. Bonded pairs are excluded from
// both.
func (e *Engine) pairInteraction(i, j int, marking bool) {
	if e.bonded(i, j) {
		return
	}
	a := e.atoms
	dx := a.X[j] - a.X[i]
	dy := a.Y[j] - a.Y[i]
	r2 := dx*dx + dy*dy
	ei, ej := a.Element[i], a.Element[j]
	if marking && r2 < e.listCutoffSq[ei][ej] {
		e.vlist.MarkNeighbors(i, j)
	}
	if r2 > 0 && r2 < e.cutoffSq[ei][ej] {
		f := e.ljKernels[ei][ej].ForceOverDistanceFromSquaredDistance(r2)
		a.AX[i] += f * dx
		a.AY[i] += f * dy
		a.AX[j] -= f * dx
		a.AY[j] -= f * dy
	}
}

func (e *Engine) shortRangeForcesFromCells() {
	rows, cols := e.cells.Rows(), e.cells.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			bucket := e.cells.Cell(row*cols + col)
			if len(bucket) == 0 {
				continue
			}
			neighboring := e.cells.NeighboringCells(row, col)
			for bi, i := range bucket {
				for _, j := range bucket[bi+1:] {
					e.pairInteraction(i, j, true)
				}
				for _, nb := range neighboring {
					for _, j := range nb {
						e.pairInteraction(i, j, true)
					}
				}
			}
		}
	}
}

func (e *Engine) shortRangeForcesFromList() {
	a := e.atoms
	list := e.vlist.List()
	for i := 0; i < a.N; i++ {
		end := e.vlist.EndIdxFor(i)
		for k := e.vlist.StartIdxFor(i); k < end; k++ {
			e.pairInteraction(i, list[k], false)
		}
	}
}

// coulombForces iterates only the charged-atom list, inner loop over
// earlier charged atoms, skipping bonded pairs.
func (e *Engine) coulombForces() {
	if !e.useCoulomb || len(e.chargedAtoms) < 2 {
		return
	}
	a := e.atoms
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
			if r2 == 0 {
				continue
			}
			f := pairwise.CoulombForceOverDistanceFromSquaredDistance(r2, a.Charge[i], a.Charge[j])
			a.AX[i] += f * dx
			a.AY[i] += f * dy
			a.AX[j] -= f * dx
			a.AY[j] -= f * dy
		}
	}
}

func (e *Engine) radialBondForces() {
	b := e.radialBonds
	if b.N == 0 {
		return
	}
	a := e.atoms
	for k := 0; k < b.N; k++ {
		i, j := b.Atom1[k], b.Atom2[k]
		dx := a.X[j] - a.X[i]
		dy := a.Y[j] - a.Y[i]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		f := units.EVPerNMToMWForce * b.Strength[k] * (r - b.Length[k]) / r
		a.AX[i] += f * dx
		a.AY[i] += f * dy
		a.AX[j] -= f * dx
		a.AY[j] -= f * dy
	}
}

func (e *Engine) angularBondForces() {
	b := e.angularBonds
	if b.N == 0 {
		return
	}
	a := e.atoms
	for k := 0; k < b.N; k++ {
		i, j, apex := b.Atom1[k], b.Atom2[k], b.Atom3[k]
		rijx := a.X[i] - a.X[apex]
		rijy := a.Y[i] - a.Y[apex]
		rkjx := a.X[j] - a.X[apex]
		rkjy := a.Y[j] - a.Y[apex]
		dij := math.Hypot(rijx, rijy)
		dkj := math.Hypot(rkjx, rkjy)
		if dij == 0 || dkj == 0 {
			continue
		}
		cos := (rijx*rkjx + rijy*rkjy) / (dij * dkj)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		sin := math.Sqrt(1 - cos*cos)
		if sin < 1e-4 {
			sin = 1e-4
		}
		theta := math.Acos(cos)

		common := units.EVPerNMToMWForce * b.Strength[k] * (theta - b.Angle[k]) / (sin * dij * dkj)
		fix := common * (rkjx - cos*dkj/dij*rijx)
		fiy := common * (rkjy - cos*dkj/dij*rijy)
		fjx := common * (rijx - cos*dij/dkj*rkjx)
		fjy := common * (rijy - cos*dij/dkj*rkjy)

		a.AX[i] += fix
		a.AY[i] += fiy
		a.AX[j] += fjx
		a.AY[j] += fjy
		// the apex takes minus the sum, keeping the bond force-free overall
		a.AX[apex] -= fix + fjx
		a.AY[apex] -= fiy + fjy
	}
}

func (e *Engine) restraintForces() {
	r := e.restraints
	if r.N == 0 {
		return
	}
	a := e.atoms
	for k := 0; k < r.N; k++ {
		i := r.Atom[k]
		a.AX[i] += units.EVPerNMToMWForce * r.K[k] * (r.X0[k] - a.X[i])
		a.AY[i] += units.EVPerNMToMWForce * r.K[k] * (r.Y0[k] - a.Y[i])
	}
}

func (e *Engine) springForces() {
	s := e.springs
	a := e.atoms
	for k := range s.Active {
		if !s.Active[k] {
			continue
		}
		i := s.Atom[k]
		a.AX[i] += units.EVPerNMToMWForce * s.Strength[k] * (s.X[k] - a.X[i])
		a.AY[i] += units.EVPerNMToMWForce * s.Strength[k] * (s.Y[k] - a.Y[i])
	}
}
