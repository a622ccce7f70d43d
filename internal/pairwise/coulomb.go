package pairwise

import (
	"math"

	"github.com/san-kum/md2d/internal/units"
)

// Coulomb kernels. Charges are in elementary charge units; the constant
// k·e² is folded in so no per-call unit conversion is needed.

// CoulombForceOverDistanceFromSquaredDistance returns F/r in internal force
// units per nm. Opposite charges yield a positive (attractive) value.
func CoulombForceOverDistanceFromSquaredDistance(r2, q1, q2 float64) float64 {
	return -units.CoulombConstant * q1 * q2 * units.EVPerNMToMWForce / (r2 * math.Sqrt(r2))
}

// CoulombPotentialFromSquaredDistance returns the pair potential in eV.
func CoulombPotentialFromSquaredDistance(r2, q1, q2 float64) float64 {
	return units.CoulombConstant * q1 * q2 / math.Sqrt(r2)
}
