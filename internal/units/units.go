// Package units defines the internal unit system of the engine.
//
// Internally everything is carried in "MW units": mass in Dalton, distance
// in nm, time in fs. Velocities are nm/fs, momenta Dalton·nm/fs, energies
// Dalton·nm²/fs² and forces Dalton·nm/fs². Energies cross the public
// boundary in eV and temperatures in Kelvin.
package units

const (
	// DaltonKG is one unified atomic mass unit in kg.
	DaltonKG = 1.66053886e-27

	// JoulesPerEV converts eV to Joules.
	JoulesPerEV = 1.6021765e-19

	// MWEnergyToEV converts the internal energy unit (Dalton·nm²/fs²)
	// to eV. One nm²/fs² is 1e12 m²/s².
	MWEnergyToEV = DaltonKG * 1e12 / JoulesPerEV

	// EVToMWEnergy converts eV to internal energy units.
	EVToMWEnergy = 1 / MWEnergyToEV

	// EVPerNMToMWForce converts a force expressed in eV/nm into the
	// internal force unit (Dalton·nm/fs²). Numerically identical to
	// EVToMWEnergy since both divide out one nm.
	EVPerNMToMWForce = EVToMWEnergy

	// Boltzmann is kB in eV/K.
	Boltzmann = 8.617385e-5

	// CoulombConstant is k·e² in eV·nm, so that the potential between
	// charges q1, q2 (in elementary charges) at r nm is
	// CoulombConstant·q1·q2/r eV.
	CoulombConstant = 1.439964

	// MWForceToNewton converts the internal force unit to Newtons.
	MWForceToNewton = DaltonKG * 1e-9 / 1e-30

	// BarPerPascal converts Pa to bar.
	BarPerPascal = 1e-5

	// ProbeDepthM is the assumed out-of-plane depth, in meters, used to
	// turn a 2D force-per-length into a 3D pressure for probe readouts.
	ProbeDepthM = 1e-9
)

// MWForcePerNMToBar converts a 2D "pressure" (force per unit wall length,
// MW force units per nm) into bar, assuming ProbeDepthM of material behind
// the probed wall.
func MWForcePerNMToBar(p float64) float64 {
	// MW force / nm → N/m, then spread over the probe depth → Pa.
	pa := p * MWForceToNewton / 1e-9 / ProbeDepthM
	return pa * BarPerPascal
}

// KineticEnergyToTemperature returns the instantaneous temperature in K of
// a 2D system with the given total kinetic energy (internal units) and
// degree-of-freedom count.
func KineticEnergyToTemperature(ke float64, df int) float64 {
	if df <= 0 {
		return 0
	}
	return 2 * ke * MWEnergyToEV / (float64(df) * Boltzmann)
}

// TemperatureToKineticEnergy inverts KineticEnergyToTemperature.
func TemperatureToKineticEnergy(t float64, df int) float64 {
	return 0.5 * float64(df) * Boltzmann * t * EVToMWEnergy
}
