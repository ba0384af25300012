// Package storage persists named scenes and per-run diagnostics
// recordings under a data directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kalver/physbox/internal/metrics"
	"github.com/kalver/physbox/internal/snapshot"
	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.scenesDir(), 0755); err != nil {
		return err
	}
	return os.MkdirAll(s.runsDir(), 0755)
}

func (s *Store) scenesDir() string { return filepath.Join(s.baseDir, "scenes") }
func (s *Store) runsDir() string { return filepath.Join(s.baseDir, "runs") }

// SaveScene writes the world as a snapshot JSON file named after scene.
func (s *Store) SaveScene(scene string, w *world.World) error {
	data, err := snapshot.Export(w)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.scenesDir(), scene+".json"), data, 0644)
}

// LoadScene reads a previously saved scene into a fresh world.
func (s *Store) LoadScene(scene string) (*world.World, error) {
	data, err := os.ReadFile(filepath.Join(s.scenesDir(), scene+".json"))
	if err != nil {
		return nil, err
	}
	return snapshot.Import(data)
}

// ListScenes returns saved scene names in sorted order.
func (s *Store) ListScenes() ([]string, error) {
	entries, err := os.ReadDir(s.scenesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// RunMetadata describes one recorded run.
type RunMetadata struct {
	ID        string        `json:"id"`
	Scene     string        `json:"scene"`
	Timestamp time.Time     `json:"timestamp"`
	Frames    int           `json:"frames"`
	Bodies    int           `json:"bodies"`
	Final     metrics.Stats `json:"final"`
}

// SaveRun writes a run directory holding metadata.json and a
// diagnostics.csv time series from the recorder.
func (s *Store) SaveRun(scene string, w *world.World, rec *metrics.Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", scene, time.Now().Unix())
	runDir := filepath.Join(s.runsDir(), runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	var final metrics.Stats
	if n := rec.Len(); n > 0 {
		final = metrics.Stats{
			Kinetic:   rec.Kinetic[n-1],
			Potential: rec.Potential[n-1],
			Total:     rec.Total[n-1],
			Momentum:  rec.Momentum[n-1],
		}
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     scene,
		Timestamp: time.Now(),
		Frames:    rec.Len(),
		Bodies:    len(w.Bodies),
		Final:     final,
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

	csvFile, err := os.Create(filepath.Join(runDir, "diagnostics.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	cw := csv.NewWriter(csvFile)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "kinetic", "potential", "total", "px", "py"}); err != nil {
		return "", err
	}
	for i := 0; i < rec.Len(); i++ {
		row := []string{
			strconv.FormatFloat(rec.Times[i], 'f', 6, 64),
			strconv.FormatFloat(rec.Kinetic[i], 'f', 6, 64),
			strconv.FormatFloat(rec.Potential[i], 'f', 6, 64),
			strconv.FormatFloat(rec.Total[i], 'f', 6, 64),
			strconv.FormatFloat(rec.Momentum[i].X, 'f', 6, 64),
			strconv.FormatFloat(rec.Momentum[i].Y, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// ListRuns reads every run's metadata, skipping unreadable entries.
func (s *Store) ListRuns() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.runsDir())
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
		data, err := os.ReadFile(filepath.Join(s.runsDir(), entry.Name(), "metadata.json"))
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

// LoadRun reads one run's diagnostics time series.
func (s *Store) LoadRun(runID string) (*metrics.Recorder, error) {
	file, err := os.Open(filepath.Join(s.runsDir(), runID, "diagnostics.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rec := &metrics.Recorder{}
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) < 6 {
			continue
		}
		vals := make([]float64, 6)
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		rec.Observe(vals[0], metrics.Stats{
			Kinetic:   vals[1],
			Potential: vals[2],
			Total:     vals[3],
			Momentum:  vec.Vec{X: vals[4], Y: vals[5]},
		})
	}
	return rec, nil
}
