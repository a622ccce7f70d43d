package viz

import (
	"strings"

	"github.com/san-kum/md2d/internal/engine"
)

// Braille patterns: 2x4 dots per character cell.
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y); the canvas is (Width*2)x(Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// FillCircle lights a disc of sub-pixels.
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// DrawRect outlines an axis-aligned rectangle.
func (c *Canvas) DrawRect(x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		c.Set(x, y0)
		c.Set(x, y1)
	}
	for y := y0; y <= y1; y++ {
		c.Set(x0, y)
		c.Set(x1, y)
	}
}

// DrawLine draws a line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// DrawFrame paints the engine's current configuration: obstacle outlines,
// bond lines, atom discs. Domain coordinates map to the full canvas with
// y up.
func (c *Canvas) DrawFrame(e *engine.Engine) {
	c.Clear()
	lx, ly := e.GetSize()
	if lx <= 0 || ly <= 0 {
		return
	}
	pw := float64(c.Width * 2)
	ph := float64(c.Height * 4)
	toPx := func(x, y float64) (int, int) {
		return int(x / lx * pw), int(ph - y/ly*ph)
	}

	o := e.Obstacles()
	for k := 0; k < o.N; k++ {
		if !o.Visible[k] {
			continue
		}
		x0, y0 := toPx(o.X[k], o.Y[k]+o.Height[k])
		x1, y1 := toPx(o.X[k]+o.Width[k], o.Y[k])
		c.DrawRect(x0, y0, x1, y1)
	}

	for _, b := range e.RadialBondResults() {
		x0, y0 := toPx(b.X1, b.Y1)
		x1, y1 := toPx(b.X2, b.Y2)
		c.DrawLine(x0, y0, x1, y1)
	}

	a := e.Atoms()
	if a == nil {
		return
	}
	for i := 0; i < a.N; i++ {
		x, y := toPx(a.X[i], a.Y[i])
		r := int(a.Radius[i] / lx * pw)
		c.FillCircle(x, y, r)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
