package engine

// growthChunk is the capacity increment for every parallel-array container.
const growthChunk = 10

// Atoms stores all per-atom attributes as parallel, index-aligned arrays.
//
// PX/PY are maintained as an explicit redundant copy of mass·velocity:
// every velocity mutation recomputes them. AX/AY hold forces in internal
// force units during accumulation and accelerations (nm/fs²) afterwards.
type Atoms struct {
	N int

	X, Y   []float64
	VX, VY []float64
	PX, PY []float64
	AX, AY []float64
	Speed  []float64

	Element  []int
	Mass     []float64
	Radius   []float64
	Charge   []float64
	Friction []float64

	Pinned []bool

	// view-only flags: stored for hosts, never consulted by the engine
	Marked    []bool
	Visible   []bool
	Draggable []bool
}

func newAtoms(capacity int) *Atoms {
	a := &Atoms{}
	a.grow(capacity)
	return a
}

func (a *Atoms) grow(to int) {
	if cap(a.X) >= to {
		return
	}
	// round up to the next chunk
	to = ((to + growthChunk - 1) / growthChunk) * growthChunk
	growF := func(s []float64) []float64 {
		n := make([]float64, to)
		copy(n, s)
		return n
	}
	growI := func(s []int) []int {
		n := make([]int, to)
		copy(n, s)
		return n
	}
	growB := func(s []bool) []bool {
		n := make([]bool, to)
		copy(n, s)
		return n
	}
	a.X, a.Y = growF(a.X), growF(a.Y)
	a.VX, a.VY = growF(a.VX), growF(a.VY)
	a.PX, a.PY = growF(a.PX), growF(a.PY)
	a.AX, a.AY = growF(a.AX), growF(a.AY)
	a.Speed = growF(a.Speed)
	a.Element = growI(a.Element)
	a.Mass = growF(a.Mass)
	a.Radius = growF(a.Radius)
	a.Charge = growF(a.Charge)
	a.Friction = growF(a.Friction)
	a.Pinned = growB(a.Pinned)
	a.Marked = growB(a.Marked)
	a.Visible = growB(a.Visible)
	a.Draggable = growB(a.Draggable)
}

// Clone returns a deep, independent copy.
func (a *Atoms) Clone() *Atoms {
	c := &Atoms{N: a.N}
	c.X = append([]float64(nil), a.X...)
	c.Y = append([]float64(nil), a.Y...)
	c.VX = append([]float64(nil), a.VX...)
	c.VY = append([]float64(nil), a.VY...)
	c.PX = append([]float64(nil), a.PX...)
	c.PY = append([]float64(nil), a.PY...)
	c.AX = append([]float64(nil), a.AX...)
	c.AY = append([]float64(nil), a.AY...)
	c.Speed = append([]float64(nil), a.Speed...)
	c.Element = append([]int(nil), a.Element...)
	c.Mass = append([]float64(nil), a.Mass...)
	c.Radius = append([]float64(nil), a.Radius...)
	c.Charge = append([]float64(nil), a.Charge...)
	c.Friction = append([]float64(nil), a.Friction...)
	c.Pinned = append([]bool(nil), a.Pinned...)
	c.Marked = append([]bool(nil), a.Marked...)
	c.Visible = append([]bool(nil), a.Visible...)
	c.Draggable = append([]bool(nil), a.Draggable...)
	return c
}

// Restore fully overwrites this container from a clone.
func (a *Atoms) Restore(from *Atoms) {
	c := from.Clone()
	*a = *c
}
