package pressure

import (
	"math"
	"testing"
)

func TestAdvanceAndAverage(t *testing.T) {
	b := New(1)

	impulses := make([][4]float64, 1)
	impulses[0][West] = 100.0
	b.Advance(impulses, 50.0)

	// one slot of 2.0, the other 49 zero
	want := 2.0 / BufferLength
	if got := b.AverageForce(0, West); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected average force %g, got %g", want, got)
	}
	if got := b.AverageForce(0, East); got != 0 {
		t.Errorf("expected zero on unprobed side, got %g", got)
	}
}

func TestRingWrapsAround(t *testing.T) {
	b := New(1)
	impulses := make([][4]float64, 1)
	impulses[0][North] = 10.0
	for i := 0; i < BufferLength+5; i++ {
		b.Advance(impulses, 10.0)
	}
	// every slot now holds 1.0
	if got := b.AverageForce(0, North); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected steady-state force 1.0, got %g", got)
	}
}

func TestPressureInBar(t *testing.T) {
	b := New(1)
	if p := b.PressureInBar(0, South, 0); p != 0 {
		t.Errorf("zero wall length must read zero, got %g", p)
	}
	impulses := make([][4]float64, 1)
	impulses[0][South] = 1.0
	for i := 0; i < BufferLength; i++ {
		b.Advance(impulses, 1.0)
	}
	if p := b.PressureInBar(0, South, 2.0); p <= 0 {
		t.Errorf("expected positive pressure, got %g", p)
	}
}

func TestCloneRestoreIndependence(t *testing.T) {
	b := New(2)
	impulses := make([][4]float64, 2)
	impulses[1][East] = 4.0
	b.Advance(impulses, 2.0)

	c := b.Clone()
	b.Advance(impulses, 2.0)

	restored := New(2)
	restored.Restore(c)
	if got := restored.AverageForce(1, East); math.Abs(got-2.0/BufferLength) > 1e-12 {
		t.Errorf("restored buffer lost data: %g", got)
	}

	// mutating the clone's source must not leak into the restored copy
	b.Advance(impulses, 2.0)
	if got := restored.AverageForce(1, East); math.Abs(got-2.0/BufferLength) > 1e-12 {
		t.Errorf("restore aliases live arrays: %g", got)
	}
}

func TestSideNames(t *testing.T) {
	names := map[Side]string{West: "west", North: "north", East: "east", South: "south"}
	for side, want := range names {
		if side.String() != want {
			t.Errorf("expected %q, got %q", want, side.String())
		}
	}
}
