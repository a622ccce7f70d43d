// Package viz provides terminal-based visualization for the simulation.
//
//   - [Canvas]: Braille-based pixel canvas drawing atoms, bonds and
//     obstacles at sub-character resolution
//   - [LiveModel]: Bubble Tea program stepping the engine in real time
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	T     - Toggle the thermostat
//	Q     - Quit
package viz
