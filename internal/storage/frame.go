package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Frame is the renderable still of a run: geometry only, persisted as
// frame.json alongside the observables so a stored run can be rendered
// after the fact.
type Frame struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Atoms     []FrameAtom     `json:"atoms"`
	Obstacles []FrameObstacle `json:"obstacles"`
	Bonds     []FrameBond     `json:"bonds"`
}

type FrameAtom struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Element int     `json:"element"`
}

type FrameObstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	R      int     `json:"r"`
	G      int     `json:"g"`
	B      int     `json:"b"`
}

type FrameBond struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// SaveFrame writes a run's final frame next to its observables.
func (s *Store) SaveFrame(runID string, f *Frame) error {
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(runDir, "frame.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// LoadFrame reads a run's stored frame back.
func (s *Store) LoadFrame(runID string) (*Frame, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "frame.json"))
	if err != nil {
		return nil, err
	}
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
