// Package pairwise provides the closed-form pair interaction kernels used
// by the engine: Lennard-Jones, parameterized per element pair, and
// Coulomb, parameterized per call by the two charges.
//
// Both kernels work from the squared separation so that callers never take
// a square root on the hot path unless the potential itself requires one.
// Force kernels return F/r in internal force units such that the force on
// atom a from atom b is (F/r)·(b−a): positive values attract.
package pairwise
