// Package export captures simulation stills and renders them to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/md2d/internal/engine"
	"github.com/san-kum/md2d/internal/storage"
)

var elementFill = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff4444", "#ff00ff", "#ffffff"}

// CaptureFrame copies the engine's renderable geometry into a storable
// frame. Run ComputeOutputState first so the bond endpoint mirror is
// fresh.
func CaptureFrame(e *engine.Engine) *storage.Frame {
	lx, ly := e.GetSize()
	f := &storage.Frame{Width: lx, Height: ly}

	o := e.Obstacles()
	for k := 0; k < o.N; k++ {
		if !o.Visible[k] {
			continue
		}
		f.Obstacles = append(f.Obstacles, storage.FrameObstacle{
			X: o.X[k], Y: o.Y[k],
			Width: o.Width[k], Height: o.Height[k],
			R: o.ColorR[k], G: o.ColorG[k], B: o.ColorB[k],
		})
	}

	for _, b := range e.RadialBondResults() {
		f.Bonds = append(f.Bonds, storage.FrameBond{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2})
	}

	if a := e.Atoms(); a != nil {
		for i := 0; i < a.N; i++ {
			if !a.Visible[i] {
				continue
			}
			f.Atoms = append(f.Atoms, storage.FrameAtom{
				X: a.X[i], Y: a.Y[i], Radius: a.Radius[i], Element: a.Element[i],
			})
		}
	}
	return f
}

// FrameToSVG renders a frame: obstacles as rectangles, bonds as lines,
// atoms as discs colored by element. One nm maps to scale px; domain y is
// up, SVG y is down.
func FrameToSVG(f *storage.Frame, scale float64) string {
	width := f.Width * scale
	height := f.Height * scale
	toY := func(y float64) float64 { return height - y*scale }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, o := range f.Obstacles {
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="rgb(%d,%d,%d)" stroke="#666"/>
`, o.X*scale, toY(o.Y+o.Height), o.Width*scale, o.Height*scale, o.R, o.G, o.B))
	}

	for _, b := range f.Bonds {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-width="1.5"/>
`, b.X1*scale, toY(b.Y1), b.X2*scale, toY(b.Y2)))
	}

	for _, a := range f.Atoms {
		fill := elementFill[a.Element%len(elementFill)]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, a.X*scale, toY(a.Y), a.Radius*scale, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
