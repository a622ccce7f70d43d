package engine

import (
	"fmt"

	"github.com/san-kum/md2d/internal/neighbor"
	"github.com/san-kum/md2d/internal/pairwise"
)

// ElementProps describes one element of the catalog. Epsilon carries the
// conventional negative sign (well depth −Epsilon eV), Sigma is in nm and
// Mass in Dalton.
type ElementProps struct {
	Mass    float64
	Epsilon float64
	Sigma   float64
}

// Elements is the element table. Radius is derived from sigma; Used marks
// elements currently referenced by at least one atom and gates the
// max-cutoff computation.
type Elements struct {
	Count int

	Mass    []float64
	Epsilon []float64
	Sigma   []float64
	Radius  []float64
	Used    []bool
}

func newElements() *Elements {
	return &Elements{}
}

func (e *Elements) grow(to int) {
	if cap(e.Mass) >= to {
		return
	}
	to = ((to + growthChunk - 1) / growthChunk) * growthChunk
	growF := func(s []float64) []float64 {
		n := make([]float64, to)
		copy(n, s)
		return n
	}
	e.Mass = growF(e.Mass)
	e.Epsilon = growF(e.Epsilon)
	e.Sigma = growF(e.Sigma)
	e.Radius = growF(e.Radius)
	used := make([]bool, to)
	copy(used, e.Used)
	e.Used = used
}

// AddElement appends an element to the catalog and rebuilds the pairwise
// coefficient matrices.
func (e *Engine) AddElement(p ElementProps) error {
	if p.Sigma <= 0 {
		return fmt.Errorf("engine: element sigma must be positive, got %g", p.Sigma)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("engine: element mass must be positive, got %g", p.Mass)
	}
	el := e.elements
	el.grow(el.Count + 1)
	i := el.Count
	el.Mass[i] = p.Mass
	el.Epsilon[i] = p.Epsilon
	el.Sigma[i] = p.Sigma
	el.Radius[i] = pairwise.Radius(p.Sigma)
	el.Count++
	return e.rebuildPairMatrices()
}

// InitializeElements replaces the (empty) catalog with the given list.
func (e *Engine) InitializeElements(list []ElementProps) error {
	for _, p := range list {
		if err := e.AddElement(p); err != nil {
			return err
		}
	}
	return nil
}

// SetElementProperties updates an element, propagates mass and radius to
// every atom of that element and recomputes the pair coefficients.
func (e *Engine) SetElementProperties(i int, p ElementProps) error {
	el := e.elements
	if i < 0 || i >= el.Count {
		return fmt.Errorf("engine: no element %d", i)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("engine: element sigma must be positive, got %g", p.Sigma)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("engine: element mass must be positive, got %g", p.Mass)
	}
	el.Mass[i] = p.Mass
	el.Epsilon[i] = p.Epsilon
	el.Sigma[i] = p.Sigma
	el.Radius[i] = pairwise.Radius(p.Sigma)

	if a := e.atoms; a != nil {
		for k := 0; k < a.N; k++ {
			if a.Element[k] != i {
				continue
			}
			a.Mass[k] = el.Mass[i]
			a.Radius[k] = el.Radius[i]
			a.PX[k] = a.Mass[k] * a.VX[k]
			a.PY[k] = a.Mass[k] * a.VY[k]
		}
	}
	return e.rebuildPairMatrices()
}

// RadiusOfElement returns the derived radius of element i in nm.
func (e *Engine) RadiusOfElement(i int) float64 { return e.elements.Radius[i] }

// rebuildPairMatrices recomputes the per-pair (epsilon, sigma, cutoff²,
// list-cutoff², kernel) tables and the derived neighbor-structure
// parameters.
func (e *Engine) rebuildPairMatrices() error {
	n := e.elements.Count
	e.pairEpsilon = squareMatrix(n)
	e.pairSigma = squareMatrix(n)
	e.cutoffSq = squareMatrix(n)
	e.listCutoffSq = squareMatrix(n)
	e.ljKernels = make([][]*pairwise.LennardJones, n)
	for i := range e.ljKernels {
		e.ljKernels[i] = make([]*pairwise.LennardJones, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			eps := pairwise.MixEpsilon(e.elements.Epsilon[i], e.elements.Epsilon[j])
			sig := pairwise.MixSigma(e.elements.Sigma[i], e.elements.Sigma[j])
			lj, err := pairwise.NewLennardJones(eps, sig)
			if err != nil {
				return err
			}
			lj.Freeze()
			cut := cutoffRatio * sig
			listCut := cutoffListRatio * sig
			e.pairEpsilon[i][j], e.pairEpsilon[j][i] = eps, eps
			e.pairSigma[i][j], e.pairSigma[j][i] = sig, sig
			e.cutoffSq[i][j], e.cutoffSq[j][i] = cut*cut, cut*cut
			e.listCutoffSq[i][j], e.listCutoffSq[j][i] = listCut*listCut, listCut*listCut
			e.ljKernels[i][j], e.ljKernels[j][i] = lj, lj
		}
	}
	e.refreshCutoffs()
	return nil
}

func squareMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// markElementsUsed recomputes the per-element used flags from the current
// atom population.
func (e *Engine) markElementsUsed() {
	for i := range e.elements.Used[:e.elements.Count] {
		e.elements.Used[i] = false
	}
	if e.atoms == nil {
		return
	}
	for k := 0; k < e.atoms.N; k++ {
		e.elements.Used[e.atoms.Element[k]] = true
	}
}

// refreshCutoffs recomputes maxCutoff and the Verlet skin width over used
// element pairs and resizes the cell grid accordingly.
func (e *Engine) refreshCutoffs() {
	e.markElementsUsed()

	maxCutoff := 0.0
	minSkin := 0.0
	first := true
	for i := 0; i < e.elements.Count; i++ {
		if !e.elements.Used[i] {
			continue
		}
		for j := i; j < e.elements.Count; j++ {
			if !e.elements.Used[j] {
				continue
			}
			sig := e.pairSigma[i][j]
			if c := cutoffListRatio * sig; c > maxCutoff {
				maxCutoff = c
			}
			skin := (cutoffListRatio - cutoffRatio) * sig
			if first || skin < minSkin {
				minSkin = skin
				first = false
			}
		}
	}
	// no used elements yet: fall back to the largest declared sigma so the
	// grid is valid before the first atom lands
	if maxCutoff == 0 {
		for i := 0; i < e.elements.Count; i++ {
			if c := cutoffListRatio * e.elements.Sigma[i]; c > maxCutoff {
				maxCutoff = c
			}
			skin := (cutoffListRatio - cutoffRatio) * e.elements.Sigma[i]
			if first || skin < minSkin {
				minSkin = skin
				first = false
			}
		}
	}
	e.maxCutoff = maxCutoff
	e.vlist.SetMaxDisplacement(minSkin)
	if e.sizeSet && maxCutoff > 0 {
		if e.cells == nil {
			e.cells = neighbor.NewCellList(e.lx, e.ly, maxCutoff)
		} else {
			e.cells.Reinitialize(maxCutoff)
		}
		// grid changed: force a list rebuild on the next force pass
		e.vlist.Clear(0)
	}
}
