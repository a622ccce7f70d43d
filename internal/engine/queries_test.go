package engine

import (
	"math"
	"testing"
)

func TestBondedAndMoleculeQueries(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 6)
	for i := 0; i < 6; i++ {
		addAtom(t, e, AtomProps{X: 1 + float64(i)*1.2, Y: 5})
	}
	// chain 0-1-2 and pair 3-4; atom 5 alone
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {3, 4}} {
		if _, err := e.AddRadialBond(RadialBondProps{Atom1: pair[0], Atom2: pair[1], Length: 1.2, Strength: 1}); err != nil {
			t.Fatalf("add bond: %v", err)
		}
	}

	if got := e.BondedAtoms(1); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("expected atom 1 bonded to [0 2], got %v", got)
	}

	mol := e.MoleculeAtoms(2)
	if len(mol) != 3 || mol[0] != 0 || mol[1] != 1 || mol[2] != 2 {
		t.Errorf("expected molecule [0 1 2], got %v", mol)
	}
	if mol := e.MoleculeAtoms(5); len(mol) != 1 || mol[0] != 5 {
		t.Errorf("expected singleton molecule [5], got %v", mol)
	}
}

func TestAtomNeighborsWithinListCutoff(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 3)
	addAtom(t, e, AtomProps{X: 3.0, Y: 3.0})
	addAtom(t, e, AtomProps{X: 3.5, Y: 3.0}) // within 2.5σ = 0.85
	addAtom(t, e, AtomProps{X: 6.0, Y: 6.0}) // far

	got := e.AtomNeighbors(0)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected neighbors [1], got %v", got)
	}
}

func TestCanPlaceAtom(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 2)
	addAtom(t, e, AtomProps{X: 5, Y: 5})
	if _, err := e.AddObstacle(ObstacleProps{
		X: 7, Y: 7, Width: 1, Height: 1, Mass: math.Inf(1), Visible: true,
	}); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"open space", 2, 2, true},
		{"on top of an atom", 5.05, 5, false},
		{"inside the obstacle", 7.5, 7.5, false},
		{"outside the walls", 0.05, 5, false},
		{"hugging a wall", 9.5, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CanPlaceAtom(0, tt.x, tt.y, -1); got != tt.want {
				t.Errorf("CanPlaceAtom(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// skipping the atom itself allows its own position
	if !e.CanPlaceAtom(0, 5.05, 5, 0) {
		t.Error("skipAtom should exempt the overlapping atom")
	}
}

func TestPotentialCalculator(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 1)
	addAtom(t, e, AtomProps{X: 5, Y: 5})

	pot := e.NewPotentialCalculator(0, 0)
	rm := math.Pow(2, 1.0/6.0) * argonSigma
	if u := pot(5+rm, 5); math.Abs(u-argonEpsilon) > 1e-9 {
		t.Errorf("expected %g eV at r_min, got %g", argonEpsilon, u)
	}

	grad := e.NewPotentialGradientCalculator(0, 0)
	gx, gy := grad(5+rm, 5)
	if math.Abs(gx) > 1e-9 || math.Abs(gy) > 1e-9 {
		t.Errorf("expected zero gradient at r_min, got (%g, %g)", gx, gy)
	}
	// inside the core the potential falls with distance, so the x-gradient
	// is negative: it points back toward the atom
	gx, _ = grad(5+0.9*argonSigma, 5)
	if gx >= 0 {
		t.Errorf("expected negative x-gradient inside the core, got %g", gx)
	}
}

func TestFindMinimumPELocation(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 1)
	addAtom(t, e, AtomProps{X: 5, Y: 5})

	x, y, ok := e.FindMinimumPELocation(0, 0)
	if !ok {
		t.Fatal("expected a minimum location")
	}
	r := math.Hypot(x-5, y-5)
	rm := math.Pow(2, 1.0/6.0) * argonSigma
	// the scan grid is coarse; the refined point lands near the well
	if r < 0.8*rm || r > 2.5*rm {
		t.Errorf("expected minimum near r_min %g, got r=%g", rm, r)
	}

	pot := e.NewPotentialCalculator(0, 0)
	if u := pot(x, y); u > 0 {
		t.Errorf("expected non-positive PE at the minimum, got %g", u)
	}
}

func TestFindMinimumPESquaredLocation(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 1)
	addAtom(t, e, AtomProps{X: 5, Y: 5})

	x, y, ok := e.FindMinimumPESquaredLocation(0, 0)
	if !ok {
		t.Fatal("expected a location")
	}
	pot := e.NewPotentialCalculator(0, 0)
	if u := pot(x, y); math.Abs(u) > 1e-3 {
		t.Errorf("expected near-zero PE, got %g", u)
	}
}

func TestAtomInBounds(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 1)
	r := e.RadiusOfElement(0)
	if e.AtomInBounds(0, r/2, 5) {
		t.Error("a spot closer than one radius to the wall is out of bounds")
	}
	if !e.AtomInBounds(0, 5, 5) {
		t.Error("the domain center is in bounds")
	}
}
