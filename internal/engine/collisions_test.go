package engine

import (
	"math"
	"testing"

	"github.com/san-kum/md2d/internal/pressure"
)

func TestWallReflectionElastic(t *testing.T) {
	e := newArgonEngine(t, 5, 5, 1)
	addAtom(t, e, AtomProps{X: 4.5, Y: 2.5, VX: 0.02})

	if err := e.Integrate(100, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}

	a := e.Atoms()
	r := a.Radius[0]
	if a.X[0] < r || a.X[0] > 5-r || a.Y[0] < r || a.Y[0] > 5-r {
		t.Errorf("atom escaped the walls: (%g, %g)", a.X[0], a.Y[0])
	}
	if math.Abs(a.Speed[0]-0.02) > 1e-12 {
		t.Errorf("wall bounce changed speed: %g", a.Speed[0])
	}
	if a.VX[0] >= 0 {
		t.Errorf("expected reflected velocity, got %g", a.VX[0])
	}
}

func TestWallFoldRecoversRunawayStep(t *testing.T) {
	e := newArgonEngine(t, 5, 5, 1)
	// crosses the domain several times over in a single step
	addAtom(t, e, AtomProps{X: 2.5, Y: 2.5, VX: 12})

	if err := e.Integrate(200, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}
	a := e.Atoms()
	r := a.Radius[0]
	if a.X[0] < r || a.X[0] > 5-r {
		t.Errorf("fold failed to contain the atom: x=%g", a.X[0])
	}
}

// Equal masses: the atom stops and the obstacle carries the velocity on.
func TestAtomObstacleEqualMassExchange(t *testing.T) {
	e := New()
	if err := e.SetSize(6, 5); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := e.AddElement(ElementProps{Mass: 20, Epsilon: -0.01, Sigma: 0.3}); err != nil {
		t.Fatalf("add element: %v", err)
	}
	if err := e.CreateAtomsArray(1); err != nil {
		t.Fatalf("create atoms: %v", err)
	}
	e.UseLennardJonesInteraction(false)

	addAtom(t, e, AtomProps{X: 2.0, Y: 2.5, VX: 0.01})
	if _, err := e.AddObstacle(ObstacleProps{
		X: 3.0, Y: 2.0, Width: 0.5, Height: 1.0, Mass: 20, Visible: true,
	}); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}

	if err := e.Integrate(100, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}

	a := e.Atoms()
	o := e.Obstacles()
	if math.Abs(a.VX[0]) > 1e-12 {
		t.Errorf("atom should be at rest after equal-mass exchange, vx=%g", a.VX[0])
	}
	if math.Abs(o.VX[0]-0.01) > 1e-12 {
		t.Errorf("obstacle should carry the velocity, vx=%g", o.VX[0])
	}

	// probes disabled: impulse buffers stay silent
	for s := pressure.Side(0); s < 4; s++ {
		if v := e.PressureBuffers().AverageForce(0, s); v != 0 {
			t.Errorf("probe %v accumulated %g without being enabled", s, v)
		}
	}
}

func TestImmovableObstacleReflects(t *testing.T) {
	e := New()
	if err := e.SetSize(6, 5); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := e.AddElement(ElementProps{Mass: 20, Epsilon: -0.01, Sigma: 0.3}); err != nil {
		t.Fatalf("add element: %v", err)
	}
	if err := e.CreateAtomsArray(1); err != nil {
		t.Fatalf("create atoms: %v", err)
	}
	e.UseLennardJonesInteraction(false)

	addAtom(t, e, AtomProps{X: 2.0, Y: 2.5, VX: 0.01})
	if _, err := e.AddObstacle(ObstacleProps{
		X: 3.0, Y: 2.0, Width: 0.5, Height: 1.0, Mass: math.Inf(1),
		WestProbe: true, Visible: true,
	}); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}

	if err := e.Integrate(150, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}

	a := e.Atoms()
	o := e.Obstacles()
	if math.Abs(a.VX[0]+0.01) > 1e-12 {
		t.Errorf("expected reflected atom velocity -0.01, got %g", a.VX[0])
	}
	if o.X[0] != 3.0 || o.VX[0] != 0 {
		t.Errorf("immovable obstacle moved: x=%g vx=%g", o.X[0], o.VX[0])
	}

	// the west probe saw one momentum transfer of 2·m·v
	if v := e.PressureBuffers().AverageForce(0, pressure.West); v <= 0 {
		t.Errorf("expected positive west probe force, got %g", v)
	}
}

func TestNoAtomInsideObstacleAfterSteps(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 30)
	if _, err := e.AddObstacle(ObstacleProps{
		X: 4, Y: 4, Width: 2, Height: 2, Mass: math.Inf(1), Visible: true,
	}); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}
	if err := e.SetupAtomsRandomly(0, 30, 150); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := e.Integrate(2000, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}

	a := e.Atoms()
	o := e.Obstacles()
	for i := 0; i < a.N; i++ {
		r := a.Radius[i]
		if a.X[i] < r || a.X[i] > 10-r || a.Y[i] < r || a.Y[i] > 10-r {
			t.Errorf("atom %d outside walls: (%g, %g)", i, a.X[i], a.Y[i])
		}
		if a.X[i] > o.X[0]-r && a.X[i] < o.X[0]+o.Width[0]+r &&
			a.Y[i] > o.Y[0]-r && a.Y[i] < o.Y[0]+o.Height[0]+r {
			t.Errorf("atom %d inside the obstacle: (%g, %g)", i, a.X[i], a.Y[i])
		}
	}
}

func TestMovableObstacleBouncesOffWalls(t *testing.T) {
	e := New()
	if err := e.SetSize(6, 5); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := e.AddElement(ElementProps{Mass: 20, Epsilon: -0.01, Sigma: 0.3}); err != nil {
		t.Fatalf("add element: %v", err)
	}
	if err := e.CreateAtomsArray(1); err != nil {
		t.Fatalf("create atoms: %v", err)
	}
	e.UseLennardJonesInteraction(false)
	addAtom(t, e, AtomProps{X: 1.0, Y: 4.0})

	if _, err := e.AddObstacle(ObstacleProps{
		X: 4.0, Y: 2.0, Width: 1.0, Height: 1.0, Mass: 50, VX: 0.02, Visible: true,
	}); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}

	if err := e.Integrate(200, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}
	o := e.Obstacles()
	if o.X[0] < 0 || o.X[0] > 6-o.Width[0] {
		t.Errorf("obstacle escaped the walls: x=%g", o.X[0])
	}
	if math.Abs(math.Abs(o.VX[0])-0.02) > 1e-12 {
		t.Errorf("wall bounce changed obstacle speed: %g", o.VX[0])
	}
}
