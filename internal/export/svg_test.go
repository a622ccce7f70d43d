package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/md2d/internal/engine"
)

func buildFrameSystem(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New()
	if err := e.SetSize(5, 5); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := e.AddElement(engine.ElementProps{Mass: 39.95, Epsilon: -0.01034, Sigma: 0.34}); err != nil {
		t.Fatalf("add element: %v", err)
	}
	if err := e.CreateAtomsArray(3); err != nil {
		t.Fatalf("create atoms: %v", err)
	}
	for _, p := range []engine.AtomProps{
		{X: 1.0, Y: 1.0, Visible: true},
		{X: 1.5, Y: 1.0, Visible: true},
		{X: 3.0, Y: 3.0, Visible: false},
	} {
		if err := e.AddAtom(p); err != nil {
			t.Fatalf("add atom: %v", err)
		}
	}
	if _, err := e.AddRadialBond(engine.RadialBondProps{Atom1: 0, Atom2: 1, Length: 0.5, Strength: 2}); err != nil {
		t.Fatalf("add bond: %v", err)
	}
	if _, err := e.AddObstacle(engine.ObstacleProps{
		X: 3.5, Y: 3.5, Width: 1, Height: 0.5, Mass: math.Inf(1),
		ColorR: 120, ColorG: 120, ColorB: 120, Visible: true,
	}); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}

	var out engine.OutputState
	e.ComputeOutputState(&out)
	return e
}

func TestCaptureFrame(t *testing.T) {
	e := buildFrameSystem(t)
	f := CaptureFrame(e)

	if f.Width != 5 || f.Height != 5 {
		t.Errorf("expected 5x5 frame, got %gx%g", f.Width, f.Height)
	}
	// the invisible atom is not captured
	if len(f.Atoms) != 2 {
		t.Errorf("expected 2 visible atoms, got %d", len(f.Atoms))
	}
	if len(f.Obstacles) != 1 || len(f.Bonds) != 1 {
		t.Errorf("expected 1 obstacle and 1 bond, got %d and %d", len(f.Obstacles), len(f.Bonds))
	}
	if f.Bonds[0].X1 != 1.0 || f.Bonds[0].X2 != 1.5 {
		t.Errorf("stale bond endpoints: %+v", f.Bonds[0])
	}
}

func TestFrameToSVG(t *testing.T) {
	e := buildFrameSystem(t)
	svg := FrameToSVG(CaptureFrame(e), 50)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `width="250" height="250"`) {
		t.Error("expected 250px canvas for a 5 nm domain at 50 px/nm")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 atom discs, got %d", got)
	}
	if !strings.Contains(svg, `rgb(120,120,120)`) {
		t.Error("obstacle fill color missing")
	}
	if !strings.Contains(svg, "<line") {
		t.Error("bond line missing")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated document")
	}
}
