// Package storage persists simulation runs: one directory per run holding
// metadata.json and an observables.csv time series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Atoms     int                `json:"atoms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Series is the sampled observable history of one run.
type Series struct {
	Times       []float64
	Kinetic     []float64
	Potential   []float64
	Temperature []float64
	CMX, CMY    []float64
}

// Append records one sample.
func (s *Series) Append(t, ke, pe, temp, cmx, cmy float64) {
	s.Times = append(s.Times, t)
	s.Kinetic = append(s.Kinetic, ke)
	s.Potential = append(s.Potential, pe)
	s.Temperature = append(s.Temperature, temp)
	s.CMX = append(s.CMX, cmx)
	s.CMY = append(s.CMY, cmy)
}

var seriesHeader = []string{"time", "kinetic", "potential", "temperature", "cm_x", "cm_y"}

// Save writes one run directory and returns its ID.
func (s *Store) Save(scenario string, dt, duration float64, atoms int, metrics map[string]float64, series *Series) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Atoms:     atoms,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "observables.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return "", err
	}
	for i := range series.Times {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Kinetic[i], 'g', -1, 64),
			strconv.FormatFloat(series.Potential[i], 'g', -1, 64),
			strconv.FormatFloat(series.Temperature[i], 'f', 4, 64),
			strconv.FormatFloat(series.CMX[i], 'f', 6, 64),
			strconv.FormatFloat(series.CMY[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads a run's observable history back.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "observables.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < len(seriesHeader) {
			continue
		}
		vals := make([]float64, len(seriesHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		series.Append(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	}
	return series, nil
}
