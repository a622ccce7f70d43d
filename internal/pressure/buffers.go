// Package pressure accumulates directional collision impulses for obstacle
// probes and turns them into pressure readings.
//
// Each probed obstacle wall owns a rolling buffer of recent impulse rates.
// One slot is written per Integrate call: the impulse collected over that
// call divided by its duration, i.e. an average force in internal units.
// Readings average the whole buffer so a single quiet interval does not
// zero the probe.
package pressure

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/md2d/internal/units"
)

// BufferLength is the number of sampling intervals retained per probe.
const BufferLength = 50

// Side identifies an obstacle wall.
type Side int

const (
	West Side = iota
	North
	East
	South
	sideCount
)

var sideNames = [sideCount]string{"west", "north", "east", "south"}

func (s Side) String() string { return sideNames[s] }

// Buffers holds the rolling force buffers for every obstacle.
type Buffers struct {
	vals [][sideCount][]float64
	idx  int
}

func New(numObstacles int) *Buffers {
	b := &Buffers{}
	for i := 0; i < numObstacles; i++ {
		b.AddObstacle()
	}
	return b
}

// AddObstacle grows the buffer set by one obstacle.
func (b *Buffers) AddObstacle() {
	var v [sideCount][]float64
	for s := range v {
		v[s] = make([]float64, BufferLength)
	}
	b.vals = append(b.vals, v)
}

// NumObstacles returns the number of tracked obstacles.
func (b *Buffers) NumObstacles() int { return len(b.vals) }

// Advance writes one slot per probe from the impulses accumulated over an
// Integrate call of the given duration (fs), then rotates the ring.
func (b *Buffers) Advance(impulses [][sideCount]float64, duration float64) {
	if duration <= 0 {
		return
	}
	for o := range b.vals {
		for s := Side(0); s < sideCount; s++ {
			b.vals[o][s][b.idx] = impulses[o][s] / duration
		}
	}
	b.idx = (b.idx + 1) % BufferLength
}

// AverageForce returns the mean force on the probe in internal units.
func (b *Buffers) AverageForce(obstacle int, side Side) float64 {
	return stat.Mean(b.vals[obstacle][side], nil)
}

// PressureInBar converts a probe's average force into bar, spreading it
// over the probed wall length.
func (b *Buffers) PressureInBar(obstacle int, side Side, wallLength float64) float64 {
	if wallLength <= 0 {
		return 0
	}
	return units.MWForcePerNMToBar(b.AverageForce(obstacle, side) / wallLength)
}

// Clone returns a deep copy.
func (b *Buffers) Clone() *Buffers {
	c := &Buffers{idx: b.idx}
	c.vals = make([][sideCount][]float64, len(b.vals))
	for o := range b.vals {
		for s := range b.vals[o] {
			c.vals[o][s] = append([]float64(nil), b.vals[o][s]...)
		}
	}
	return c
}

// Restore overwrites this buffer set from a clone.
func (b *Buffers) Restore(from *Buffers) {
	b.idx = from.idx
	b.vals = make([][sideCount][]float64, len(from.vals))
	for o := range from.vals {
		for s := range from.vals[o] {
			b.vals[o][s] = append([]float64(nil), from.vals[o][s]...)
		}
	}
}
