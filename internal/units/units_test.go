package units

import (
	"math"
	"testing"
)

func TestEnergyConversionRoundTrip(t *testing.T) {
	// 1 Dalton·nm²/fs² is about 1.0364e4 eV
	if math.Abs(MWEnergyToEV-1.0364e4) > 1.0 {
		t.Errorf("expected ~1.0364e4 eV per internal unit, got %g", MWEnergyToEV)
	}
	if v := 2.5 * MWEnergyToEV * EVToMWEnergy; math.Abs(v-2.5) > 1e-12 {
		t.Errorf("round trip changed value: %g", v)
	}
}

func TestTemperatureRoundTrip(t *testing.T) {
	ke := TemperatureToKineticEnergy(300, 20)
	back := KineticEnergyToTemperature(ke, 20)
	if math.Abs(back-300) > 1e-9 {
		t.Errorf("expected 300 K, got %g", back)
	}
}

func TestTemperatureZeroDf(t *testing.T) {
	if v := KineticEnergyToTemperature(1.0, 0); v != 0 {
		t.Errorf("expected 0 for zero degrees of freedom, got %g", v)
	}
}

func TestPressureConversionPositive(t *testing.T) {
	p := MWForcePerNMToBar(1e-6)
	if p <= 0 {
		t.Errorf("expected positive pressure, got %g", p)
	}
}
