package engine

import (
	"math"
	"testing"
)

// A thermostatted gas settles on the target to floating precision: each
// rescale sets the instantaneous temperature exactly.
func TestThermostatHoldsTarget(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 100)
	if err := e.SetupAtomsRandomly(0, 100, 300); err != nil {
		t.Fatalf("setup: %v", err)
	}
	e.UseThermostat(true)
	if err := e.SetTargetTemperature(300); err != nil {
		t.Fatalf("set target: %v", err)
	}

	if err := e.Integrate(2000, 1); err != nil {
		t.Fatalf("integrate: %v", err)
	}

	var out OutputState
	e.ComputeOutputState(&out)
	if math.Abs(out.Temperature-300)/300 > 0.01 {
		t.Errorf("expected 300 K within 1%%, got %g", out.Temperature)
	}
}

func TestSetupAtomsRandomlyHitsTemperature(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 50)
	if err := e.SetupAtomsRandomly(0, 50, 200); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if got := e.Temperature(); math.Abs(got-200) > 1e-6 {
		t.Errorf("expected exact 200 K after rescale, got %g", got)
	}
}

func TestTransientTemperatureChangeClears(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 40)
	if err := e.SetupAtomsRandomly(0, 40, 100); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := e.SetTargetTemperature(250); err != nil {
		t.Fatalf("set target: %v", err)
	}
	e.BeginTransientTemperatureChange()
	if !e.TransientTemperatureChangeInProgress() {
		t.Fatal("transient flag should be set")
	}

	// the transient rescale pins T to the target each step; the windowed
	// average crosses into the tolerance band within ~window size steps
	for i := 0; i < 3000 && e.TransientTemperatureChangeInProgress(); i++ {
		if err := e.Integrate(1, 1); err != nil {
			t.Fatalf("integrate: %v", err)
		}
	}
	if e.TransientTemperatureChangeInProgress() {
		t.Error("transient flag never cleared")
	}
	if got := e.Temperature(); math.Abs(got-250)/250 > 0.05 {
		t.Errorf("expected ~250 K after transient change, got %g", got)
	}
}

func TestRelaxToTemperature(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 30)
	if err := e.SetupAtomsRandomly(0, 30, 50); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := e.RelaxToTemperature(400); err != nil {
		t.Fatalf("relax: %v", err)
	}
	if e.TransientTemperatureChangeInProgress() {
		t.Error("relax returned with the transient flag still set")
	}
	if got := e.Temperature(); math.Abs(got-400)/400 > 0.05 {
		t.Errorf("expected ~400 K after relax, got %g", got)
	}
}

func TestRelaxRejectsInvalidTemperature(t *testing.T) {
	e := newArgonEngine(t, 10, 10, 5)
	addAtom(t, e, AtomProps{X: 5, Y: 5})
	if err := e.RelaxToTemperature(math.NaN()); err == nil {
		t.Error("expected error for NaN temperature")
	}
}

func TestTemperatureWindow(t *testing.T) {
	w := newTemperatureWindow(4)
	if w.mean() != 0 {
		t.Errorf("empty window should average 0, got %g", w.mean())
	}
	w.add(10)
	w.add(20)
	if got := w.mean(); got != 15 {
		t.Errorf("expected 15, got %g", got)
	}
	w.add(30)
	w.add(40)
	w.add(50) // overwrites the 10
	if got := w.mean(); got != 35 {
		t.Errorf("expected 35 after wraparound, got %g", got)
	}
	w.reset()
	if w.mean() != 0 {
		t.Errorf("reset window should average 0, got %g", w.mean())
	}
}

func TestWindowSizeHelper(t *testing.T) {
	if temperatureWindowSize(true) != 1000 || temperatureWindowSize(false) != 1000 {
		t.Error("both branches currently yield 1000")
	}
}
