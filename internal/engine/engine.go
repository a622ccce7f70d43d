package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/md2d/internal/neighbor"
	"github.com/san-kum/md2d/internal/pairwise"
	"github.com/san-kum/md2d/internal/pressure"
)

const (
	// cutoffRatio scales pair sigma into the forces cutoff.
	cutoffRatio = 2.0
	// cutoffListRatio scales pair sigma into the neighbor-list cutoff.
	// The difference to cutoffRatio is the Verlet skin.
	cutoffListRatio = 2.5

	defaultVDWLinesRatio = 1.67

	// maxAtomCount bounds CreateAtomsArray.
	maxAtomCount = 1000
)

// Engine is a 2D molecular dynamics simulation. Construct with New, then:
// SetSize once, declare elements, CreateAtomsArray, populate, Integrate.
type Engine struct {
	lx, ly  float64
	sizeSet bool
	time    float64

	useLJ         bool
	useCoulomb    bool
	useThermostat bool

	targetTemperature float64
	gravity           float64 // nm/fs², 0 disables
	viscosity         float64
	vdwLinesRatio     float64

	atoms        *Atoms
	atomsCreated bool
	elements     *Elements

	// per element-pair coefficient matrices
	pairEpsilon  [][]float64
	pairSigma    [][]float64
	cutoffSq     [][]float64
	listCutoffSq [][]float64
	ljKernels    [][]*pairwise.LennardJones
	maxCutoff    float64

	radialBonds *RadialBonds
	bondMatrix  map[int]map[int]bool
	angularBonds *AngularBonds
	restraints  *Restraints
	springs     *Springs
	obstacles   *Obstacles

	cells *neighbor.CellList
	vlist *neighbor.VerletList

	chargedAtoms []int

	buffers *pressure.Buffers

	tempChangeInProgress bool
	tempWindow           *temperatureWindow

	// drift scratch: positions at the start of the current step
	prevX, prevY []float64

	vdwPairs          VdwPairs
	radialBondResults []RadialBondResult
}

// New returns an empty engine. Elements must be declared before atoms and
// the size can be set only once.
func New() *Engine {
	return &Engine{
		useLJ:         true,
		vdwLinesRatio: defaultVDWLinesRatio,
		elements:      newElements(),
		radialBonds:   newRadialBonds(),
		bondMatrix:    make(map[int]map[int]bool),
		angularBonds:  newAngularBonds(),
		restraints:    newRestraints(),
		springs:       newSprings(),
		obstacles:     newObstacles(),
		vlist:         neighbor.NewVerletList(),
		buffers:       pressure.New(0),
		tempWindow:    newTemperatureWindow(temperatureWindowSize(false)),
	}
}

// UseCoulombInteraction toggles direct pairwise Coulomb forces.
func (e *Engine) UseCoulombInteraction(on bool) { e.useCoulomb = on }

// UseLennardJonesInteraction toggles the short-range LJ forces.
func (e *Engine) UseLennardJonesInteraction(on bool) { e.useLJ = on }

// UseThermostat toggles per-step velocity rescaling toward the target
// temperature.
func (e *Engine) UseThermostat(on bool) { e.useThermostat = on }

// SetTargetTemperature sets the thermostat setpoint in Kelvin.
func (e *Engine) SetTargetTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTemperature, t)
	}
	e.targetTemperature = t
	return nil
}

// SetGravitationalField sets the downward gravitational acceleration in
// nm/fs²; zero disables gravity.
func (e *Engine) SetGravitationalField(g float64) { e.gravity = g }

// SetViscosity sets the global viscous drag coefficient.
func (e *Engine) SetViscosity(v float64) { e.viscosity = v }

// SetVDWLinesRatio sets the sigma multiple within which non-bonded pairs
// are reported by UpdateVdwPairsArray.
func (e *Engine) SetVDWLinesRatio(r float64) { e.vdwLinesRatio = r }

// SetSize fixes the domain to [0,lx]×[0,ly] nm. Allowed exactly once.
func (e *Engine) SetSize(lx, ly float64) error {
	if e.sizeSet {
		return ErrSizeAlreadySet
	}
	if lx <= 0 || ly <= 0 {
		return fmt.Errorf("engine: size must be positive, got %gx%g", lx, ly)
	}
	e.lx, e.ly = lx, ly
	e.sizeSet = true
	if e.maxCutoff > 0 {
		e.cells = neighbor.NewCellList(lx, ly, e.maxCutoff)
	}
	return nil
}

// GetSize returns the domain extent in nm.
func (e *Engine) GetSize() (lx, ly float64) { return e.lx, e.ly }

// SetTime sets the simulation clock in fs.
func (e *Engine) SetTime(t float64) { e.time = t }

// Time returns the simulation clock in fs.
func (e *Engine) Time() float64 { return e.time }

// NumberOfAtoms returns the current atom count.
func (e *Engine) NumberOfAtoms() int {
	if e.atoms == nil {
		return 0
	}
	return e.atoms.N
}

// Atoms exposes the live atom arrays for read-only observers (renderers).
func (e *Engine) Atoms() *Atoms { return e.atoms }

// Obstacles exposes the live obstacle arrays for read-only observers.
func (e *Engine) Obstacles() *Obstacles { return e.obstacles }

// PressureBuffers exposes the probe buffers for read-only observers.
func (e *Engine) PressureBuffers() *pressure.Buffers { return e.buffers }

// CreateAtomsArray allocates the atom store for up to n atoms. Elements
// must exist first; the call is valid once and freezes the domain size.
func (e *Engine) CreateAtomsArray(n int) error {
	if e.atomsCreated {
		return ErrAtomsAlreadyCreated
	}
	if e.elements.Count == 0 {
		return ErrNoElements
	}
	if n < 1 || n > maxAtomCount {
		return fmt.Errorf("engine: atom count must be in [1, %d], got %d", maxAtomCount, n)
	}
	if !e.sizeSet {
		return fmt.Errorf("engine: size must be set before atoms are created")
	}
	e.atoms = newAtoms(n)
	e.atomsCreated = true
	return nil
}

// AtomProps describes one atom. Mass and radius always come from the
// element, never from the caller.
type AtomProps struct {
	X, Y     float64
	VX, VY   float64
	Element  int
	Charge   float64
	Friction float64
	Pinned   bool

	Marked, Visible, Draggable bool
}

// AddAtom appends an atom. The underlying arrays grow in chunks as needed.
func (e *Engine) AddAtom(p AtomProps) error {
	if !e.atomsCreated {
		return fmt.Errorf("engine: create the atoms array before adding atoms")
	}
	if p.Element < 0 || p.Element >= e.elements.Count {
		return fmt.Errorf("engine: no element %d", p.Element)
	}
	a := e.atoms
	a.grow(a.N + 1)
	i := a.N
	a.N++
	e.writeAtom(i, p)
	e.refreshCutoffs()
	return nil
}

// SetAtomProperties overwrites atom i from the given props, keeping every
// invariant: momenta track mass·velocity, mass and radius come from the
// element, and the charged-atom list stays exact.
func (e *Engine) SetAtomProperties(i int, p AtomProps) error {
	if e.atoms == nil || i < 0 || i >= e.atoms.N {
		return fmt.Errorf("engine: no atom %d", i)
	}
	if p.Element < 0 || p.Element >= e.elements.Count {
		return fmt.Errorf("engine: no element %d", p.Element)
	}
	e.writeAtom(i, p)
	e.refreshCutoffs()
	return nil
}

func (e *Engine) writeAtom(i int, p AtomProps) {
	a := e.atoms
	a.X[i], a.Y[i] = p.X, p.Y
	a.VX[i], a.VY[i] = p.VX, p.VY
	a.Element[i] = p.Element
	a.Mass[i] = e.elements.Mass[p.Element]
	a.Radius[i] = e.elements.Radius[p.Element]
	a.Charge[i] = p.Charge
	a.Friction[i] = p.Friction
	a.Pinned[i] = p.Pinned
	a.Marked[i] = p.Marked
	a.Visible[i] = p.Visible
	a.Draggable[i] = p.Draggable
	if p.Pinned {
		a.VX[i], a.VY[i] = 0, 0
		a.AX[i], a.AY[i] = 0, 0
	}
	a.PX[i] = a.Mass[i] * a.VX[i]
	a.PY[i] = a.Mass[i] * a.VY[i]
	a.Speed[i] = math.Hypot(a.VX[i], a.VY[i])
	e.rebuildChargedList()
}

// rebuildChargedList keeps the charged-atom fast list equal to the set of
// indices with nonzero charge.
func (e *Engine) rebuildChargedList() {
	e.chargedAtoms = e.chargedAtoms[:0]
	a := e.atoms
	if a == nil {
		return
	}
	for i := 0; i < a.N; i++ {
		if a.Charge[i] != 0 {
			e.chargedAtoms = append(e.chargedAtoms, i)
		}
	}
}

// PinAtoms pins the given atoms, zeroing their velocity and acceleration.
func (e *Engine) PinAtoms(indices []int) error {
	a := e.atoms
	for _, i := range indices {
		if a == nil || i < 0 || i >= a.N {
			return fmt.Errorf("engine: no atom %d", i)
		}
	}
	for _, i := range indices {
		a.Pinned[i] = true
		a.VX[i], a.VY[i] = 0, 0
		a.AX[i], a.AY[i] = 0, 0
		a.PX[i], a.PY[i] = 0, 0
		a.Speed[i] = 0
	}
	return nil
}

// TotalMass returns the summed atom mass in Dalton.
func (e *Engine) TotalMass() float64 {
	if e.atoms == nil {
		return 0
	}
	m := 0.0
	for i := 0; i < e.atoms.N; i++ {
		m += e.atoms.Mass[i]
	}
	return m
}
