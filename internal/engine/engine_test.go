package engine

import (
	"errors"
	"math"
	"testing"
)

const (
	argonMass    = 39.95
	argonEpsilon = -0.01034
	argonSigma   = 0.34
)

func newArgonEngine(t *testing.T, lx, ly float64, capacity int) *Engine {
	t.Helper()
	e := New()
	if err := e.SetSize(lx, ly); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := e.AddElement(ElementProps{Mass: argonMass, Epsilon: argonEpsilon, Sigma: argonSigma}); err != nil {
		t.Fatalf("add element: %v", err)
	}
	if err := e.CreateAtomsArray(capacity); err != nil {
		t.Fatalf("create atoms: %v", err)
	}
	return e
}

func addAtom(t *testing.T, e *Engine, p AtomProps) {
	t.Helper()
	if err := e.AddAtom(p); err != nil {
		t.Fatalf("add atom: %v", err)
	}
}

func TestSetSizeTwice(t *testing.T) {
	e := New()
	if err := e.SetSize(10, 10); err != nil {
		t.Fatalf("first set size: %v", err)
	}
	if err := e.SetSize(5, 5); !errors.Is(err, ErrSizeAlreadySet) {
		t.Errorf("expected ErrSizeAlreadySet, got %v", err)
	}
}

func TestCreateAtomsBeforeElements(t *testing.T) {
	e := New()
	if err := e.SetSize(10, 10); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := e.CreateAtomsArray(10); !errors.Is(err, ErrNoElements) {
		t.Errorf("expected ErrNoElements, got %v", err)
	}
}

func TestCreateAtomsTwice(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 10)
	if err := e.CreateAtomsArray(10); !errors.Is(err, ErrAtomsAlreadyCreated) {
		t.Errorf("expected ErrAtomsAlreadyCreated, got %v", err)
	}
}

func TestCreateAtomsCountRange(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"negative", -5},
		{"too many", 1001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			if err := e.SetSize(10, 10); err != nil {
				t.Fatalf("set size: %v", err)
			}
			if err := e.AddElement(ElementProps{Mass: 1, Epsilon: -0.01, Sigma: 0.2}); err != nil {
				t.Fatalf("add element: %v", err)
			}
			if err := e.CreateAtomsArray(tt.n); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestInvalidTargetTemperature(t *testing.T) {
	e := New()
	for _, bad := range []float64{math.NaN(), -1, math.Inf(1)} {
		if err := e.SetTargetTemperature(bad); !errors.Is(err, ErrInvalidTemperature) {
			t.Errorf("expected ErrInvalidTemperature for %v, got %v", bad, err)
		}
	}
	if err := e.SetTargetTemperature(300); err != nil {
		t.Errorf("expected valid temperature to pass, got %v", err)
	}
}

func TestIntegrateBeforeAtoms(t *testing.T) {
	e := New()
	if err := e.Integrate(100, 1); !errors.Is(err, ErrNoAtoms) {
		t.Errorf("expected ErrNoAtoms, got %v", err)
	}
}

func TestMomentumTracksVelocity(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 5)
	addAtom(t, e, AtomProps{X: 2, Y: 2, VX: 0.01, VY: -0.005})
	addAtom(t, e, AtomProps{X: 5, Y: 5, VX: -0.002, VY: 0.003})

	a := e.Atoms()
	for i := 0; i < a.N; i++ {
		if a.PX[i] != a.Mass[i]*a.VX[i] || a.PY[i] != a.Mass[i]*a.VY[i] {
			t.Errorf("atom %d: momentum out of sync", i)
		}
	}

	if err := e.SetAtomProperties(0, AtomProps{X: 2, Y: 2, VX: 0.02, VY: 0.01}); err != nil {
		t.Fatalf("set atom: %v", err)
	}
	if a.PX[0] != a.Mass[0]*0.02 || a.PY[0] != a.Mass[0]*0.01 {
		t.Error("momentum out of sync after setter")
	}
}

func TestMassAndRadiusFollowElement(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 5)
	if err := e.AddElement(ElementProps{Mass: 20, Epsilon: -0.005, Sigma: 0.25}); err != nil {
		t.Fatalf("add element: %v", err)
	}
	addAtom(t, e, AtomProps{X: 2, Y: 2, Element: 1, VX: 0.01})

	a := e.Atoms()
	if a.Mass[0] != 20 {
		t.Errorf("expected element mass 20, got %g", a.Mass[0])
	}

	if err := e.SetElementProperties(1, ElementProps{Mass: 25, Epsilon: -0.005, Sigma: 0.3}); err != nil {
		t.Fatalf("set element: %v", err)
	}
	if a.Mass[0] != 25 {
		t.Errorf("expected propagated mass 25, got %g", a.Mass[0])
	}
	if a.Radius[0] != e.RadiusOfElement(1) {
		t.Errorf("expected propagated radius %g, got %g", e.RadiusOfElement(1), a.Radius[0])
	}
	if a.PX[0] != 25*0.01 {
		t.Error("momentum not rescaled with the new mass")
	}
}

func TestChargedAtomsList(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 5)
	addAtom(t, e, AtomProps{X: 1, Y: 1, Charge: 1})
	addAtom(t, e, AtomProps{X: 2, Y: 2})
	addAtom(t, e, AtomProps{X: 3, Y: 3, Charge: -0.5})

	want := []int{0, 2}
	if len(e.chargedAtoms) != len(want) {
		t.Fatalf("expected %v, got %v", want, e.chargedAtoms)
	}
	for i := range want {
		if e.chargedAtoms[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, e.chargedAtoms)
		}
	}

	// neutralizing an atom removes it
	if err := e.SetAtomProperties(0, AtomProps{X: 1, Y: 1}); err != nil {
		t.Fatalf("set atom: %v", err)
	}
	if len(e.chargedAtoms) != 1 || e.chargedAtoms[0] != 2 {
		t.Errorf("expected [2], got %v", e.chargedAtoms)
	}
}

func TestPinnedAtomsStayPut(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 5)
	addAtom(t, e, AtomProps{X: 3, Y: 3, VX: 0.01, VY: 0.01})
	if err := e.PinAtoms([]int{0}); err != nil {
		t.Fatalf("pin: %v", err)
	}

	a := e.Atoms()
	if a.VX[0] != 0 || a.VY[0] != 0 || a.AX[0] != 0 || a.AY[0] != 0 {
		t.Error("pinning must zero velocity and acceleration")
	}

	if err := e.Integrate(100, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if a.X[0] != 3 || a.Y[0] != 3 {
		t.Errorf("pinned atom moved to (%g, %g)", a.X[0], a.Y[0])
	}
}

func TestBondMatrixSymmetry(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 5)
	addAtom(t, e, AtomProps{X: 2, Y: 2})
	addAtom(t, e, AtomProps{X: 2.4, Y: 2})
	addAtom(t, e, AtomProps{X: 2.8, Y: 2})

	if _, err := e.AddRadialBond(RadialBondProps{Atom1: 0, Atom2: 1, Length: 0.4, Strength: 5}); err != nil {
		t.Fatalf("add bond: %v", err)
	}
	if !e.bonded(0, 1) || !e.bonded(1, 0) {
		t.Error("bond matrix must be symmetric")
	}
	if e.bonded(0, 2) || e.bonded(1, 2) {
		t.Error("unbonded pairs must not appear in the matrix")
	}

	// re-keying on endpoint change
	if err := e.SetRadialBondProperties(0, RadialBondProps{Atom1: 1, Atom2: 2, Length: 0.4, Strength: 5}); err != nil {
		t.Fatalf("set bond: %v", err)
	}
	if e.bonded(0, 1) {
		t.Error("old pair still marked after re-keying")
	}
	if !e.bonded(1, 2) {
		t.Error("new pair not marked after re-keying")
	}
}

func TestBondedPairExcludedFromForces(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 2)
	// close enough for a large LJ force if the pair were not excluded
	addAtom(t, e, AtomProps{X: 3.0, Y: 3.0})
	addAtom(t, e, AtomProps{X: 3.3, Y: 3.0})
	// rest length at current separation: bond force is zero too
	if _, err := e.AddRadialBond(RadialBondProps{Atom1: 0, Atom2: 1, Length: 0.3, Strength: 5}); err != nil {
		t.Fatalf("add bond: %v", err)
	}

	e.updateAccelerations()
	a := e.Atoms()
	for i := 0; i < 2; i++ {
		if math.Abs(a.AX[i]) > 1e-15 || math.Abs(a.AY[i]) > 1e-15 {
			t.Errorf("atom %d feels force (%g, %g) despite exclusion", i, a.AX[i], a.AY[i])
		}
	}
}

func TestSpringForceLifecycle(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 2)
	addAtom(t, e, AtomProps{X: 3, Y: 3})

	idx, err := e.AddSpringForce(0, 4, 3, 2.0)
	if err != nil {
		t.Fatalf("add spring: %v", err)
	}
	if err := e.UpdateSpringForce(idx, 5, 3); err != nil {
		t.Fatalf("update spring: %v", err)
	}
	if err := e.RemoveSpringForce(idx); err != nil {
		t.Fatalf("remove spring: %v", err)
	}
	if err := e.UpdateSpringForce(idx, 5, 3); err == nil {
		t.Error("expected error updating a removed spring")
	}

	// the slot is reused
	idx2, err := e.AddSpringForce(0, 1, 1, 1.0)
	if err != nil {
		t.Fatalf("re-add spring: %v", err)
	}
	if idx2 != idx {
		t.Errorf("expected slot %d to be reused, got %d", idx, idx2)
	}
}

func TestGrowthPastInitialCapacity(t *testing.T) {
	e := newArgonEngine(t, 20, 20, 1)
	for i := 0; i < 25; i++ {
		addAtom(t, e, AtomProps{X: 0.5 + float64(i%5)*0.9, Y: 0.5 + float64(i/5)*0.9})
	}
	if e.NumberOfAtoms() != 25 {
		t.Errorf("expected 25 atoms, got %d", e.NumberOfAtoms())
	}
	if math.Abs(e.TotalMass()-25*argonMass) > 1e-9 {
		t.Errorf("expected total mass %g, got %g", 25*argonMass, e.TotalMass())
	}
}
