package engine

import "github.com/san-kum/md2d/internal/pressure"

// Snapshot owns deep copies of the engine's physical state: atoms,
// obstacles, clock and pressure buffers. It never aliases live arrays;
// RestoreState fully overwrites them in that order.
type Snapshot struct {
	atoms     *Atoms
	obstacles *Obstacles
	time      float64
	buffers   *pressure.Buffers
}

// GetState captures a snapshot of all physical state.
func (e *Engine) GetState() *Snapshot {
	s := &Snapshot{
		obstacles: e.obstacles.Clone(),
		time:      e.time,
		buffers:   e.buffers.Clone(),
	}
	if e.atoms != nil {
		s.atoms = e.atoms.Clone()
	}
	return s
}

// RestoreState overwrites live state from a snapshot and invalidates the
// derived structures that depend on it.
func (e *Engine) RestoreState(s *Snapshot) {
	if s.atoms != nil && e.atoms != nil {
		e.atoms.Restore(s.atoms)
	} else if s.atoms != nil {
		e.atoms = s.atoms.Clone()
		e.atomsCreated = true
	}
	e.obstacles.Restore(s.obstacles)
	e.time = s.time
	e.buffers.Restore(s.buffers)

	e.rebuildChargedList()
	e.markElementsUsed()
	// positions may have jumped arbitrarily: force a neighbor rebuild
	e.vlist.Clear(0)
}
