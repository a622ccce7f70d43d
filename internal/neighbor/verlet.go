package neighbor

// VerletList holds, per atom, the potential interaction partners within
// the list cutoff. Between rebuilds the short-range force loop iterates
// the flat list instead of the cell structure.
//
// The list records positions at build time; ShouldUpdate reports true once
// any atom has moved more than half the skin width since its snapshot,
// which is the standard guarantee that no pair can have crossed the forces
// cutoff unseen.
type VerletList struct {
	buckets [][]int
	x0, y0  []float64

	// maxDisplacement is the skin width: min over used element pairs of
	// (cutoffList − cutoff)·sigma.
	maxDisplacement float64

	flat  []int
	start []int
	dirty bool
}

func NewVerletList() *VerletList {
	return &VerletList{}
}

// SetMaxDisplacement sets the skin width used by ShouldUpdate.
func (v *VerletList) SetMaxDisplacement(d float64) { v.maxDisplacement = d }

// Clear resets the list for n atoms ahead of a rebuild.
func (v *VerletList) Clear(n int) {
	if cap(v.buckets) < n {
		v.buckets = make([][]int, n)
		v.x0 = make([]float64, n)
		v.y0 = make([]float64, n)
	}
	v.buckets = v.buckets[:n]
	v.x0 = v.x0[:n]
	v.y0 = v.y0[:n]
	for i := range v.buckets {
		v.buckets[i] = v.buckets[i][:0]
	}
	v.dirty = true
}

// SaveAtomPosition snapshots atom i's position at build time.
func (v *VerletList) SaveAtomPosition(i int, x, y float64) {
	v.x0[i] = x
	v.y0[i] = y
}

// MarkNeighbors records the unordered pair (i, j). The pair is stored on
// the lower index only, so each pair is enumerated once.
func (v *VerletList) MarkNeighbors(i, j int) {
	if i == j {
		return
	}
	if i > j {
		i, j = j, i
	}
	v.buckets[i] = append(v.buckets[i], j)
	v.dirty = true
}

// ShouldUpdate reports whether any atom has drifted more than half the
// skin width from its snapshot position.
func (v *VerletList) ShouldUpdate(x, y []float64) bool {
	if len(v.x0) != len(x) {
		return true
	}
	limitSq := 0.25 * v.maxDisplacement * v.maxDisplacement
	for i := range x {
		dx := x[i] - v.x0[i]
		dy := y[i] - v.y0[i]
		if dx*dx+dy*dy > limitSq {
			return true
		}
	}
	return false
}

func (v *VerletList) flatten() {
	v.flat = v.flat[:0]
	if cap(v.start) < len(v.buckets)+1 {
		v.start = make([]int, len(v.buckets)+1)
	}
	v.start = v.start[:len(v.buckets)+1]
	for i, b := range v.buckets {
		v.start[i] = len(v.flat)
		v.flat = append(v.flat, b...)
	}
	v.start[len(v.buckets)] = len(v.flat)
	v.dirty = false
}

// List returns the flat partner array; index it with StartIdxFor and
// EndIdxFor.
func (v *VerletList) List() []int {
	if v.dirty {
		v.flatten()
	}
	return v.flat
}

// StartIdxFor returns the first index in List belonging to atom i.
func (v *VerletList) StartIdxFor(i int) int {
	if v.dirty {
		v.flatten()
	}
	return v.start[i]
}

// EndIdxFor returns one past the last index in List belonging to atom i.
func (v *VerletList) EndIdxFor(i int) int {
	if v.dirty {
		v.flatten()
	}
	return v.start[i+1]
}
