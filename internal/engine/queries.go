package engine

import (
	"math"
	"sort"

	"github.com/san-kum/md2d/internal/pairwise"
	"github.com/san-kum/md2d/internal/units"
)

// AtomNeighbors returns the atoms currently within the neighbor-list
// cutoff of atom i.
func (e *Engine) AtomNeighbors(i int) []int {
	a := e.atoms
	out := make([]int, 0, 8)
	for j := 0; j < a.N; j++ {
		if j == i {
			continue
		}
		dx := a.X[j] - a.X[i]
		dy := a.Y[j] - a.Y[i]
		if dx*dx+dy*dy < e.listCutoffSq[a.Element[i]][a.Element[j]] {
			out = append(out, j)
		}
	}
	return out
}

// BondedAtoms returns the atoms directly bonded to atom i, sorted.
func (e *Engine) BondedAtoms(i int) []int {
	out := make([]int, 0, len(e.bondMatrix[i]))
	for j := range e.bondMatrix[i] {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// MoleculeAtoms returns the transitive closure of atom i over the bond
// matrix (i included), sorted. The traversal keeps its own visited set,
// so the call is safe to nest.
func (e *Engine) MoleculeAtoms(i int) []int {
	visited := map[int]bool{i: true}
	queue := []int{i}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for j := range e.bondMatrix[cur] {
			if !visited[j] {
				visited[j] = true
				queue = append(queue, j)
			}
		}
	}
	out := make([]int, 0, len(visited))
	for j := range visited {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// AtomInBounds reports whether an atom of the given element fits inside
// the walls at (x, y).
func (e *Engine) AtomInBounds(element int, x, y float64) bool {
	r := e.elements.Radius[element]
	return x >= r && x <= e.lx-r && y >= r && y <= e.ly-r
}

// CanPlaceAtom reports whether an atom of the given element can sit at
// (x, y): inside the walls, outside every obstacle, and not overlapping
// any atom other than skipAtom (pass a negative skipAtom to check all).
func (e *Engine) CanPlaceAtom(element int, x, y float64, skipAtom int) bool {
	if !e.AtomInBounds(element, x, y) {
		return false
	}
	r := e.elements.Radius[element]

	o := e.obstacles
	for k := 0; k < o.N; k++ {
		if x > o.X[k]-r && x < o.X[k]+o.Width[k]+r &&
			y > o.Y[k]-r && y < o.Y[k]+o.Height[k]+r {
			return false
		}
	}

	a := e.atoms
	if a == nil {
		return true
	}
	for j := 0; j < a.N; j++ {
		if j == skipAtom {
			continue
		}
		dx := a.X[j] - x
		dy := a.Y[j] - y
		minDist := r + a.Radius[j]
		if dx*dx+dy*dy < minDist*minDist {
			return false
		}
	}
	return true
}

// NewPotentialCalculator returns a closure evaluating the potential
// energy, in eV, of a probe particle of the given element and charge at a
// point, against all current atoms under the enabled interactions.
func (e *Engine) NewPotentialCalculator(element int, charge float64) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		a := e.atoms
		pe := 0.0
		for j := 0; j < a.N; j++ {
			dx := a.X[j] - x
			dy := a.Y[j] - y
			r2 := dx*dx + dy*dy
			if r2 == 0 {
				continue
			}
			ej := a.Element[j]
			if e.useLJ && r2 < e.cutoffSq[element][ej] {
				pe += e.ljKernels[element][ej].PotentialFromSquaredDistance(r2)
			}
			if e.useCoulomb && charge != 0 && a.Charge[j] != 0 {
				pe += pairwise.CoulombPotentialFromSquaredDistance(r2, charge, a.Charge[j])
			}
		}
		return pe
	}
}

// NewPotentialGradientCalculator returns a closure evaluating ∇U of the
// same probe potential, in eV/nm.
func (e *Engine) NewPotentialGradientCalculator(element int, charge float64) func(x, y float64) (gx, gy float64) {
	return func(x, y float64) (float64, float64) {
		a := e.atoms
		fx, fy := 0.0, 0.0
		for j := 0; j < a.N; j++ {
			dx := a.X[j] - x
			dy := a.Y[j] - y
			r2 := dx*dx + dy*dy
			if r2 == 0 {
				continue
			}
			ej := a.Element[j]
			if e.useLJ && r2 < e.cutoffSq[element][ej] {
				f := e.ljKernels[element][ej].ForceOverDistanceFromSquaredDistance(r2)
				fx += f * dx
				fy += f * dy
			}
			if e.useCoulomb && charge != 0 && a.Charge[j] != 0 {
				f := pairwise.CoulombForceOverDistanceFromSquaredDistance(r2, charge, a.Charge[j])
				fx += f * dx
				fy += f * dy
			}
		}
		// force is in internal units; the gradient is its negation in eV/nm
		return -fx / units.EVPerNMToMWForce, -fy / units.EVPerNMToMWForce
	}
}

// FindMinimumPELocation scans the domain for the spot where a probe
// particle has the lowest potential energy, then refines by descending
// the gradient. Returns false when the domain holds no valid spot.
func (e *Engine) FindMinimumPELocation(element int, charge float64) (float64, float64, bool) {
	pot := e.NewPotentialCalculator(element, charge)
	grad := e.NewPotentialGradientCalculator(element, charge)

	bestX, bestY, bestU, found := e.scanPotential(element, func(x, y float64) float64 {
		return pot(x, y)
	})
	if !found {
		return 0, 0, false
	}

	x, y, u := bestX, bestY, bestU
	for iter := 0; iter < 100; iter++ {
		gx, gy := grad(x, y)
		norm := math.Hypot(gx, gy)
		if norm < 1e-8 {
			break
		}
		nx := x - 1e-3*gx/norm
		ny := y - 1e-3*gy/norm
		if !e.AtomInBounds(element, nx, ny) {
			break
		}
		nu := pot(nx, ny)
		if nu >= u {
			break
		}
		x, y, u = nx, ny, nu
	}
	return x, y, true
}

// FindMinimumPESquaredLocation finds the spot where the probe potential is
// closest to zero, useful for inserting an atom without injecting energy.
func (e *Engine) FindMinimumPESquaredLocation(element int, charge float64) (float64, float64, bool) {
	pot := e.NewPotentialCalculator(element, charge)
	x, y, _, found := e.scanPotential(element, func(px, py float64) float64 {
		u := pot(px, py)
		return u * u
	})
	return x, y, found
}

// scanPotential evaluates objective on a uniform grid of placeable points
// and returns the best one.
func (e *Engine) scanPotential(element int, objective func(x, y float64) float64) (float64, float64, float64, bool) {
	const gridSteps = 50
	bestX, bestY, bestU := 0.0, 0.0, math.Inf(1)
	found := false
	for ix := 1; ix < gridSteps; ix++ {
		for iy := 1; iy < gridSteps; iy++ {
			x := e.lx * float64(ix) / gridSteps
			y := e.ly * float64(iy) / gridSteps
			if !e.CanPlaceAtom(element, x, y, -1) {
				continue
			}
			if u := objective(x, y); u < bestU {
				bestX, bestY, bestU = x, y, u
				found = true
			}
		}
	}
	return bestX, bestY, bestU, found
}
