// Package engine implements a two-dimensional classical molecular dynamics
// core: point atoms interacting through Lennard-Jones and Coulomb pair
// potentials, radial and angular bonds, positional restraints and steered
// springs, with gravity, viscous drag, hard walls and movable rectangular
// obstacles. Time advances by velocity-Verlet at a fixed step; an optional
// velocity-rescaling thermostat drives the system toward a target
// temperature.
//
// The engine is single-threaded and synchronous. No method is re-entrant
// and none may be called concurrently on the same instance. Mutations
// through the public API must happen between Integrate calls; snapshots
// returned by GetState own deep copies and never alias live arrays.
//
// Internal units are Dalton, nm and fs; energies cross the API in eV and
// temperatures in Kelvin (see the units package).
package engine
