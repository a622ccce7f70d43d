package engine

import "fmt"

// BondStyle is a rendering hint carried alongside radial bonds; the engine
// stores it but does not consult it.
type BondStyle int

const (
	BondStyleStandard BondStyle = iota
	BondStyleDouble
	BondStyleTriple
)

// RadialBondProps describes a harmonic bond between two atoms: rest length
// in nm, strength in eV/nm².
type RadialBondProps struct {
	Atom1, Atom2 int
	Length       float64
	Strength     float64
	Style        BondStyle
}

// RadialBonds stores bonds as parallel arrays.
type RadialBonds struct {
	N int

	Atom1, Atom2 []int
	Length       []float64
	Strength     []float64
	Style        []BondStyle
}

func newRadialBonds() *RadialBonds { return &RadialBonds{} }

func (b *RadialBonds) grow(to int) {
	if cap(b.Atom1) >= to {
		return
	}
	to = ((to + growthChunk - 1) / growthChunk) * growthChunk
	a1 := make([]int, to)
	copy(a1, b.Atom1)
	a2 := make([]int, to)
	copy(a2, b.Atom2)
	l := make([]float64, to)
	copy(l, b.Length)
	s := make([]float64, to)
	copy(s, b.Strength)
	st := make([]BondStyle, to)
	copy(st, b.Style)
	b.Atom1, b.Atom2, b.Length, b.Strength, b.Style = a1, a2, l, s, st
}

// RadialBondResult mirrors one bond's properties plus the current endpoint
// coordinates; refreshed by ComputeOutputState for downstream renderers.
type RadialBondResult struct {
	Atom1, Atom2   int
	Length         float64
	Strength       float64
	Style          BondStyle
	X1, Y1, X2, Y2 float64
}

func (e *Engine) checkAtomIndex(i int) error {
	if e.atoms == nil || i < 0 || i >= e.atoms.N {
		return fmt.Errorf("engine: no atom %d", i)
	}
	return nil
}

// AddRadialBond adds a harmonic bond and records the pair in the bond
// matrix, excluding it from LJ and Coulomb forces.
func (e *Engine) AddRadialBond(p RadialBondProps) (int, error) {
	if err := e.checkAtomIndex(p.Atom1); err != nil {
		return 0, err
	}
	if err := e.checkAtomIndex(p.Atom2); err != nil {
		return 0, err
	}
	if p.Atom1 == p.Atom2 {
		return 0, fmt.Errorf("engine: bond endpoints must differ, got atom %d twice", p.Atom1)
	}
	b := e.radialBonds
	b.grow(b.N + 1)
	i := b.N
	b.N++
	b.Atom1[i], b.Atom2[i] = p.Atom1, p.Atom2
	b.Length[i], b.Strength[i] = p.Length, p.Strength
	b.Style[i] = p.Style
	e.markBonded(p.Atom1, p.Atom2)
	return i, nil
}

// SetRadialBondProperties overwrites bond i, re-keying the bond matrix if
// the endpoints changed.
func (e *Engine) SetRadialBondProperties(i int, p RadialBondProps) error {
	b := e.radialBonds
	if i < 0 || i >= b.N {
		return fmt.Errorf("engine: no radial bond %d", i)
	}
	if err := e.checkAtomIndex(p.Atom1); err != nil {
		return err
	}
	if err := e.checkAtomIndex(p.Atom2); err != nil {
		return err
	}
	if p.Atom1 == p.Atom2 {
		return fmt.Errorf("engine: bond endpoints must differ, got atom %d twice", p.Atom1)
	}
	e.unmarkBonded(b.Atom1[i], b.Atom2[i])
	b.Atom1[i], b.Atom2[i] = p.Atom1, p.Atom2
	b.Length[i], b.Strength[i] = p.Length, p.Strength
	b.Style[i] = p.Style
	e.markBonded(p.Atom1, p.Atom2)
	return nil
}

func (e *Engine) markBonded(i, j int) {
	if e.bondMatrix[i] == nil {
		e.bondMatrix[i] = make(map[int]bool)
	}
	if e.bondMatrix[j] == nil {
		e.bondMatrix[j] = make(map[int]bool)
	}
	e.bondMatrix[i][j] = true
	e.bondMatrix[j][i] = true
}

func (e *Engine) unmarkBonded(i, j int) {
	// another bond may still connect the pair
	b := e.radialBonds
	count := 0
	for k := 0; k < b.N; k++ {
		if (b.Atom1[k] == i && b.Atom2[k] == j) || (b.Atom1[k] == j && b.Atom2[k] == i) {
			count++
		}
	}
	if count > 1 {
		return
	}
	delete(e.bondMatrix[i], j)
	delete(e.bondMatrix[j], i)
}

// bonded reports whether (i, j) is excluded by the bond matrix.
func (e *Engine) bonded(i, j int) bool {
	return e.bondMatrix[i][j]
}

// AngularBonds stores apex-angle bonds: the potential penalizes the
// deviation of ∠(atom1–atom3–atom2) from the rest angle. Atom3 is the
// apex; strength is in eV/rad².
type AngularBonds struct {
	N int

	Atom1, Atom2, Atom3 []int
	Angle               []float64
	Strength            []float64
}

func newAngularBonds() *AngularBonds { return &AngularBonds{} }

func (b *AngularBonds) grow(to int) {
	if cap(b.Atom1) >= to {
		return
	}
	to = ((to + growthChunk - 1) / growthChunk) * growthChunk
	a1 := make([]int, to)
	copy(a1, b.Atom1)
	a2 := make([]int, to)
	copy(a2, b.Atom2)
	a3 := make([]int, to)
	copy(a3, b.Atom3)
	an := make([]float64, to)
	copy(an, b.Angle)
	s := make([]float64, to)
	copy(s, b.Strength)
	b.Atom1, b.Atom2, b.Atom3, b.Angle, b.Strength = a1, a2, a3, an, s
}

// AddAngularBond adds an angular bond with apex atom3.
func (e *Engine) AddAngularBond(atom1, atom2, atom3 int, angle, strength float64) (int, error) {
	for _, i := range []int{atom1, atom2, atom3} {
		if err := e.checkAtomIndex(i); err != nil {
			return 0, err
		}
	}
	b := e.angularBonds
	b.grow(b.N + 1)
	i := b.N
	b.N++
	b.Atom1[i], b.Atom2[i], b.Atom3[i] = atom1, atom2, atom3
	b.Angle[i], b.Strength[i] = angle, strength
	return i, nil
}

// Restraints are harmonic springs from an atom to a fixed anchor, k in
// eV/nm², no rest length.
type Restraints struct {
	N int

	Atom []int
	K    []float64
	X0   []float64
	Y0   []float64
}

func newRestraints() *Restraints { return &Restraints{} }

func (r *Restraints) grow(to int) {
	if cap(r.Atom) >= to {
		return
	}
	to = ((to + growthChunk - 1) / growthChunk) * growthChunk
	a := make([]int, to)
	copy(a, r.Atom)
	k := make([]float64, to)
	copy(k, r.K)
	x := make([]float64, to)
	copy(x, r.X0)
	y := make([]float64, to)
	copy(y, r.Y0)
	r.Atom, r.K, r.X0, r.Y0 = a, k, x, y
}

// AddRestraint anchors an atom to a fixed point with a harmonic spring.
func (e *Engine) AddRestraint(atom int, k, x0, y0 float64) (int, error) {
	if err := e.checkAtomIndex(atom); err != nil {
		return 0, err
	}
	r := e.restraints
	r.grow(r.N + 1)
	i := r.N
	r.N++
	r.Atom[i], r.K[i], r.X0[i], r.Y0[i] = atom, k, x0, y0
	return i, nil
}

// Springs are transient steered forces: like restraints, but dynamically
// added, moved and removed by the host (mouse dragging and the like).
// Slots are stable: removal frees a slot for reuse without renumbering.
type Springs struct {
	Atom     []int
	X, Y     []float64
	Strength []float64
	Active   []bool
}

func newSprings() *Springs { return &Springs{} }

// AddSpringForce attaches a spring from an atom to an anchor point and
// returns a stable index for later updates.
func (e *Engine) AddSpringForce(atom int, x, y, strength float64) (int, error) {
	if err := e.checkAtomIndex(atom); err != nil {
		return 0, err
	}
	s := e.springs
	for i := range s.Active {
		if !s.Active[i] {
			s.Atom[i], s.X[i], s.Y[i], s.Strength[i] = atom, x, y, strength
			s.Active[i] = true
			return i, nil
		}
	}
	s.Atom = append(s.Atom, atom)
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
	s.Strength = append(s.Strength, strength)
	s.Active = append(s.Active, true)
	return len(s.Atom) - 1, nil
}

// UpdateSpringForce moves a spring's anchor.
func (e *Engine) UpdateSpringForce(i int, x, y float64) error {
	s := e.springs
	if i < 0 || i >= len(s.Active) || !s.Active[i] {
		return fmt.Errorf("engine: no spring force %d", i)
	}
	s.X[i], s.Y[i] = x, y
	return nil
}

// RemoveSpringForce detaches a spring.
func (e *Engine) RemoveSpringForce(i int) error {
	s := e.springs
	if i < 0 || i >= len(s.Active) || !s.Active[i] {
		return fmt.Errorf("engine: no spring force %d", i)
	}
	s.Active[i] = false
	return nil
}
